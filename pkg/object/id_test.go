package object

import "testing"

func TestNewIDLengthValidation(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"too short", "a", true},
		{"63 chars", hexOf(63), true},
		{"64 chars", hexOf(64), false},
		{"65 chars", hexOf(65), true},
		{"uppercase rejected", hexOf(63) + "A", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func hexOf(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = "0123456789abcdef"[i%16]
	}
	return string(b)
}

func TestHashTypedDeterministic(t *testing.T) {
	a := HashTyped("blob", []byte("hello"))
	b := HashTyped("blob", []byte("hello"))
	if a != b {
		t.Fatalf("HashTyped not deterministic: %s != %s", a, b)
	}
	if HashTyped("tree", []byte("hello")) == a {
		t.Fatalf("HashTyped should differ by kind")
	}
}

func TestShort(t *testing.T) {
	id, err := NewID(hexOf(64))
	if err != nil {
		t.Fatalf("NewID: %v", err)
	}
	if got, want := id.Short(), hexOf(64)[:7]; got != want {
		t.Fatalf("Short() = %q, want %q", got, want)
	}
}
