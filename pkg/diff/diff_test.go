package diff

import "testing"

func opsEqual(a, b []Op) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLinesAllEqual(t *testing.T) {
	got := Lines("a\nb\nc", "a\nb\nc")
	want := []Op{{Equal, "a"}, {Equal, "b"}, {Equal, "c"}}
	if !opsEqual(got, want) {
		t.Fatalf("Lines = %+v, want %+v", got, want)
	}
}

func TestLinesAllDifferent(t *testing.T) {
	got := Lines("a\nb", "x\ny")
	for _, op := range got {
		if op.Type == Equal {
			t.Fatalf("expected no equal lines, got %+v", got)
		}
	}
}

func TestLinesInsertAtEnd(t *testing.T) {
	got := Lines("a", "a\nb")
	want := []Op{{Equal, "a"}, {Insert, "b"}}
	if !opsEqual(got, want) {
		t.Fatalf("Lines = %+v, want %+v", got, want)
	}
}

func TestLinesDeleteFromMiddle(t *testing.T) {
	got := Lines("a\nb\nc", "a\nc")
	want := []Op{{Equal, "a"}, {Delete, "b"}, {Equal, "c"}}
	if !opsEqual(got, want) {
		t.Fatalf("Lines = %+v, want %+v", got, want)
	}
}

func TestLinesEmptyInputs(t *testing.T) {
	if got := Lines("", ""); len(got) != 0 {
		t.Fatalf("Lines(\"\", \"\") = %+v, want empty", got)
	}
	got := Lines("", "a")
	want := []Op{{Insert, "a"}}
	if !opsEqual(got, want) {
		t.Fatalf("Lines(\"\", \"a\") = %+v, want %+v", got, want)
	}
	got = Lines("a", "")
	want = []Op{{Delete, "a"}}
	if !opsEqual(got, want) {
		t.Fatalf("Lines(\"a\", \"\") = %+v, want %+v", got, want)
	}
}

func TestLinesReconstructsB(t *testing.T) {
	a := "one\ntwo\nthree\nfour"
	b := "zero\ntwo\nfour\nfive"
	ops := Lines(a, b)

	var reconstructed []string
	for _, op := range ops {
		if op.Type == Equal || op.Type == Insert {
			reconstructed = append(reconstructed, op.Line)
		}
	}
	got := ""
	for i, line := range reconstructed {
		if i > 0 {
			got += "\n"
		}
		got += line
	}
	if got != b {
		t.Fatalf("reconstructed %q, want %q", got, b)
	}
}
