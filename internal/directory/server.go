package directory

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"nearby/internal/domain"
	"nearby/internal/metrics"
)

// maxRequestBytes caps the size of a publish body.
const maxRequestBytes = 64 << 10

// Server serves the directory protocol from a TokenStore.
type Server struct {
	store domain.TokenStore
	log   zerolog.Logger
	mux   *http.ServeMux
}

// NewServer returns a handler for the directory protocol rooted at "/".
func NewServer(store domain.TokenStore, log zerolog.Logger) *Server {
	s := &Server{store: store, log: log, mux: http.NewServeMux()}
	s.mux.HandleFunc("POST /{$}", s.handlePublish)
	s.mux.HandleFunc("GET /{id}", s.handleFetch)
	return s
}

// ServeHTTP logs and measures every request before dispatching it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)

	elapsed := time.Since(start)
	metrics.RecordServerRequest(r.Method, rec.status, elapsed)
	s.log.Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("remote", r.RemoteAddr).
		Int("status", rec.status).
		Int("bytes", rec.bytes).
		Dur("elapsed", elapsed).
		Msg("request")
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.PublishRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		s.reject(w, http.StatusBadRequest, "decode publish body", err)
		return
	}
	token, err := domain.DecodeBase64Token(req.Token)
	if err != nil {
		s.reject(w, http.StatusBadRequest, "decode token", err)
		return
	}
	id, err := s.store.Put(token)
	if err != nil {
		s.reject(w, http.StatusBadRequest, "store token", err)
		return
	}
	s.log.Debug().Int("id", int(id)).Int("bytes", len(token)).Msg("stored token")
	writeEntry(w, http.StatusOK, domain.DirectoryEntry{ID: id, Token: token.Base64(), Success: true})
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.reject(w, http.StatusBadRequest, "parse id", err)
		return
	}
	id := domain.TokenID(n)
	token, ok, err := s.store.Get(id)
	if err != nil {
		s.reject(w, http.StatusInternalServerError, "load token", err)
		return
	}
	if !ok {
		writeEntry(w, http.StatusNotFound, domain.DirectoryEntry{ID: id})
		return
	}
	writeEntry(w, http.StatusOK, domain.DirectoryEntry{ID: id, Token: token.Base64(), Success: true})
}

func (s *Server) reject(w http.ResponseWriter, status int, what string, err error) {
	s.log.Warn().Err(err).Int("status", status).Msg(what)
	writeEntry(w, status, domain.DirectoryEntry{})
}

func writeEntry(w http.ResponseWriter, status int, e domain.DirectoryEntry) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(e)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}
