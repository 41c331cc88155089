package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sunerpy/requests/codec"
)

// RecorderMode selects how the Recorder middleware treats its cache on a
// per-request basis.
type RecorderMode uint8

const (
	// RecordOrRequest serves a cached reply when one exists for the
	// fingerprint, otherwise performs the real request and records it.
	RecordOrRequest RecorderMode = iota
	// IgnoreRecordings always performs the real request, but still records
	// the result after any existing entries for the fingerprint; those
	// earlier entries stay in place and remain the ones a lookup serves.
	IgnoreRecordings
	// ForceNoRequests only ever serves from the cache; a cache miss is an
	// error rather than falling through to a live request.
	ForceNoRequests
)

// ShouldLookup reports whether mode allows serving from the cache at all.
func (m RecorderMode) ShouldLookup() bool {
	return m == RecordOrRequest || m == ForceNoRequests
}

// ShouldRequest reports whether mode allows performing a live request on a
// cache miss.
func (m RecorderMode) ShouldRequest() bool {
	return m == RecordOrRequest || m == IgnoreRecordings
}

// recordedEntry is one persisted request/response pair.
type recordedEntry struct {
	Request  InMemoryRequest  `json:"request"`
	Response InMemoryResponse `json:"response"`
}

// jsonRequest/jsonResponse are the on-disk shapes: InMemoryRequest/Response
// carry unexported fields the codec can't see directly, so persistence goes
// through these wire-shaped mirrors instead of marshaling the types as-is.
type jsonRequest struct {
	Method  string              `json:"method"`
	URL     string              `json:"url"`
	Proto   string              `json:"proto"`
	Headers map[string][]string `json:"headers"`
	Body    InMemoryBody        `json:"body"`
}

type jsonResponse struct {
	StatusCode int                 `json:"status_code"`
	Proto      string              `json:"proto"`
	Headers    map[string][]string `json:"headers"`
	Body       InMemoryBody        `json:"body"`
}

type jsonEntry struct {
	Request  jsonRequest  `json:"request"`
	Response jsonResponse `json:"response"`
}

func toJSONEntry(e recordedEntry) jsonEntry {
	url := ""
	if e.Request.URL != nil {
		url = e.Request.URL.String()
	}
	return jsonEntry{
		Request: jsonRequest{
			Method:  e.Request.Method.String(),
			URL:     url,
			Proto:   e.Request.Proto,
			Headers: map[string][]string(e.Request.Headers),
			Body:    e.Request.Body,
		},
		Response: jsonResponse{
			StatusCode: e.Response.StatusCode,
			Proto:      e.Response.Proto,
			Headers:    map[string][]string(e.Response.Headers),
			Body:       e.Response.Body,
		},
	}
}

// Store persists and retrieves recorded request/response pairs, keyed by
// request fingerprint. Every entry recorded for a fingerprint is kept, in
// insertion order, but Lookup only ever serves the earliest one, so repeated
// identical requests all replay that single cached reply.
type Store struct {
	mu      sync.RWMutex
	order   []string
	entries map[string][]recordedEntry
	baseDir string
}

// NewStore creates an in-memory store with no file persistence.
func NewStore() *Store {
	return &Store{entries: make(map[string][]recordedEntry)}
}

// NewFileStore creates a store that also persists entries under baseDir, in
// the layout <base>/<host>/<path>/<method>.<0000>.json. It does not read
// recordings already present under baseDir: a new store starts empty.
func NewFileStore(baseDir string) *Store {
	return &Store{entries: make(map[string][]recordedEntry), baseDir: baseDir}
}

// Lookup returns the earliest entry recorded for fingerprint, and whether
// one was found. Entries are not removed or advanced past, so every lookup
// of the same fingerprint returns the same response.
func (s *Store) Lookup(fingerprint string) (InMemoryResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.entries[fingerprint]
	if len(list) == 0 {
		return InMemoryResponse{}, false
	}
	return list[0].Response.Clone(), true
}

// Record appends an entry for fingerprint and, if the store has a baseDir,
// persists it to disk.
func (s *Store) Record(req InMemoryRequest, resp InMemoryResponse) error {
	fp := req.Fingerprint()
	entry := recordedEntry{Request: SanitizeRequest(req), Response: SanitizeResponse(resp)}
	s.mu.Lock()
	s.order = append(s.order, fp)
	idx := len(s.entries[fp])
	s.entries[fp] = append(s.entries[fp], entry)
	base := s.baseDir
	s.mu.Unlock()
	if base == "" {
		return nil
	}
	return s.persist(base, req, entry, idx)
}

func (s *Store) persist(base string, req InMemoryRequest, entry recordedEntry, idx int) error {
	host := req.Host()
	if host == "" {
		host = "unknown-host"
	}
	path := "/"
	if req.URL != nil && req.URL.Path != "" {
		path = req.URL.Path
	}
	dir := filepath.Join(base, host, filepath.FromSlash(path))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return NewIoError("recorder.persist", req.Host(), err)
	}
	name := fmt.Sprintf("%s.%04d.json", req.Method.String(), idx)
	data, err := codec.Marshal(toJSONEntry(entry))
	if err != nil {
		return NewDecodeError("recorder.persist", req.Host(), err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return NewIoError("recorder.persist", req.Host(), err)
	}
	return nil
}

// RecorderMiddleware serves and records request/response pairs against
// store according to mode. Fingerprinting and what gets persisted are
// governed entirely by Store and InMemoryRequest.Fingerprint: headers never
// participate, and persisted entries are sanitized before being written.
func RecorderMiddleware(store *Store, mode RecorderMode) Middleware {
	return MiddlewareFunc(func(ctx context.Context, req InMemoryRequest, next Next) (Response, error) {
		fp := req.Fingerprint()
		if mode.ShouldLookup() {
			if cached, ok := store.Lookup(fp); ok {
				return ResponseFromInMemory(cached), nil
			}
			if !mode.ShouldRequest() {
				return Response{}, NewIoError("recorder", req.Host(), fmt.Errorf("no recording for fingerprint %s", fp))
			}
		}
		resp, err := next.Run(ctx, req.Clone())
		if err != nil {
			return resp, err
		}
		mem, merr := resp.InMemory()
		if merr != nil {
			return Response{}, NewDecodeError("recorder", req.Host(), merr)
		}
		if recErr := store.Record(req, mem); recErr != nil {
			return Response{}, recErr
		}
		return ResponseFromInMemory(mem), nil
	})
}
