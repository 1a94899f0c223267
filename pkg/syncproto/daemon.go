package syncproto

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/arvo-vcs/arvo/pkg/repo"
	"github.com/rs/zerolog/log"
)

// Daemon serves the pull/push wire protocol over HTTP for a single
// repository. It is single-threaded in effect: every request handler
// holds mu for its full duration, so requests are served to completion
// one at a time.
type Daemon struct {
	mu     sync.Mutex
	Repo   *repo.Repo
	server *http.Server
}

// NewDaemon wraps r for serving.
func NewDaemon(r *repo.Repo) *Daemon {
	return &Daemon{Repo: r}
}

// Serve listens on addr (e.g. "localhost:9418") until Abort is called.
// It blocks until the listener closes. readTimeout/writeTimeout bound
// how long a single request may take to read or write.
func (d *Daemon) Serve(addr string, readTimeout, writeTimeout time.Duration) error {
	d.server = &http.Server{
		Addr:         addr,
		Handler:      http.HandlerFunc(d.handle),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	log.Info().Str("addr", addr).Msg("daemon listening")
	err := d.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Abort closes the listener, ending any in-flight Serve call. An
// in-flight request may be interrupted with undefined effect on the
// client.
func (d *Daemon) Abort() error {
	if d.server == nil {
		return nil
	}
	return d.server.Shutdown(context.Background())
}

func (d *Daemon) handle(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("daemon request panicked")
			w.WriteHeader(http.StatusInternalServerError)
		}
	}()

	d.mu.Lock()
	defer d.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		d.handlePull(w, r)
	case http.MethodPost:
		d.handlePush(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (d *Daemon) handlePull(w http.ResponseWriter, r *http.Request) {
	branch := r.URL.Query().Get("branch")
	b, ok := d.Repo.State.Refs.Branches[branch]
	if !ok {
		log.Error().Str("branch", branch).Msg("pull: branch not found")
		w.WriteHeader(http.StatusNotFound)
		return
	}

	tip := ToWire(b).Tip
	bundle, err := CollectClosure(d.Repo, tip)
	if err != nil {
		log.Error().Err(err).Str("branch", branch).Msg("pull: collect closure failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	resp := &PullResponse{Branch: ToWire(b), Bundle: bundle}
	payload := EncodePullResponse(resp)

	if wantsZstd(r.Header.Get("Accept-Encoding")) {
		compressed, err := compressZstd(payload)
		if err != nil {
			log.Error().Err(err).Msg("pull: compress failed")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Encoding", "zstd")
		payload = compressed
	}
	w.Header().Set("Content-Type", wireContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
	log.Info().Str("branch", branch).Int("commits", len(bundle.Commits)).Msg("served pull")
}

func (d *Daemon) handlePush(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error().Err(err).Msg("push: read body failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if r.Header.Get("Content-Encoding") == "zstd" {
		body, err = decompressZstd(body)
		if err != nil {
			log.Error().Err(err).Msg("push: decompress failed")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}

	req, err := DecodePushRequest(body)
	if err != nil {
		log.Error().Err(err).Msg("push: decode failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	RawImport(d.Repo, req.BranchName, req.Branch, req.Bundle)
	log.Info().Str("branch", req.BranchName).Int("commits", len(req.Bundle.Commits)).Msg("served push")
	w.WriteHeader(http.StatusOK)
}

func wantsZstd(acceptEncoding string) bool {
	return strings.Contains(acceptEncoding, "zstd")
}
