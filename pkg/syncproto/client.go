package syncproto

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/arvo-vcs/arvo/pkg/arvoerr"
	"github.com/arvo-vcs/arvo/pkg/repo"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

const wireContentType = "application/x-arvo-wire"

// Client talks the pull/push wire protocol against a single remote URL.
type Client struct {
	HTTP     *http.Client
	Compress bool
}

// NewClient returns a Client using http.DefaultClient with zstd
// compression enabled by default.
func NewClient() *Client {
	return &Client{HTTP: http.DefaultClient, Compress: true}
}

// Pull performs "GET <remoteURL>?branch=<name>" and decodes the
// PullResponse. A 404 response means the branch does not exist on the
// remote; a 500 means the server raised an internal error.
func (c *Client) Pull(ctx context.Context, remoteURL, branch string) (*PullResponse, error) {
	u, err := url.Parse(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("%w: pull: parse remote url: %v", arvoerr.ErrNetwork, err)
	}
	q := u.Query()
	q.Set("branch", branch)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: pull: build request: %v", arvoerr.ErrNetwork, err)
	}
	if c.Compress {
		req.Header.Set("Accept-Encoding", "zstd")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: pull %s: %v", arvoerr.ErrNetwork, remoteURL, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := readMaybeCompressed(resp)
		if err != nil {
			return nil, err
		}
		pr, err := DecodePullResponse(body)
		if err != nil {
			return nil, err
		}
		log.Info().Str("remote", remoteURL).Str("branch", branch).
			Int("commits", len(pr.Bundle.Commits)).Msg("pull complete")
		return pr, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: pull: branch %q not found on remote", arvoerr.ErrProtocol, branch)
	default:
		return nil, fmt.Errorf("%w: pull: remote returned status %d", arvoerr.ErrProtocol, resp.StatusCode)
	}
}

// Push performs "POST <remoteURL>" with req as the canonically-encoded
// body.
func (c *Client) Push(ctx context.Context, remoteURL string, req *PushRequest) error {
	body := EncodePushRequest(req)
	if c.Compress {
		compressed, err := compressZstd(body)
		if err != nil {
			return fmt.Errorf("%w: push: compress: %v", arvoerr.ErrNetwork, err)
		}
		body = compressed
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, remoteURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: push: build request: %v", arvoerr.ErrNetwork, err)
	}
	httpReq.Header.Set("Content-Type", wireContentType)
	if c.Compress {
		httpReq.Header.Set("Content-Encoding", "zstd")
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: push %s: %v", arvoerr.ErrNetwork, remoteURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: push: remote returned status %d", arvoerr.ErrProtocol, resp.StatusCode)
	}
	log.Info().Str("remote", remoteURL).Str("branch", req.BranchName).
		Int("commits", len(req.Bundle.Commits)).Msg("push complete")
	return nil
}

// Clone initializes an empty repository at root, adds a remote named
// "origin" pointing at remoteURL, pulls branch from it, moves the local
// master branch's tip to the pulled tip, and checks out master.
func (c *Client) Clone(ctx context.Context, root, remoteURL, branch string) (*repo.Repo, error) {
	r := repo.Init(root)
	if err := r.State.Refs.AddRemote("origin", remoteURL); err != nil {
		return nil, fmt.Errorf("clone: %w", err)
	}

	pr, err := c.Pull(ctx, remoteURL, branch)
	if err != nil {
		return nil, fmt.Errorf("clone: %w", err)
	}
	RawImport(r, "origin/"+branch, pr.Branch, pr.Bundle)

	if !pr.Branch.Tip.IsZero() {
		master := r.State.Refs.Branches["master"]
		master.Tip = &pr.Branch.Tip
		if master.Created == nil {
			created := pr.Branch.Tip
			master.Created = &created
		}
	}
	if err := r.Checkout("master"); err != nil {
		return nil, fmt.Errorf("clone: %w", err)
	}
	log.Info().Str("remote", remoteURL).Str("branch", branch).Msg("clone complete")
	return r, nil
}

func readMaybeCompressed(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", arvoerr.ErrNetwork, err)
	}
	if resp.Header.Get("Content-Encoding") == "zstd" {
		return decompressZstd(body)
	}
	return body, nil
}

func compressZstd(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd encoder: %v", arvoerr.ErrNetwork, err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func decompressZstd(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd decoder: %v", arvoerr.ErrNetwork, err)
	}
	defer dec.Close()
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd decode: %v", arvoerr.ErrNetwork, err)
	}
	return out, nil
}
