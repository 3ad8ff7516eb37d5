package service

import (
	"fmt"
	"sync"

	"github.com/squirtledeb/oneplaygameupdatebot/models"
)

// RequestRegistry is the in-memory store of pending update requests, keyed by
// request id. It is scoped to the process lifetime: entries do not survive a
// restart, and the messages they point at are simply orphaned.
//
// Remove is an atomic take and is the sole tie-break between concurrent
// resolution attempts for the same id: exactly one caller receives the record.
type RequestRegistry struct {
	mu       sync.Mutex
	requests map[string]*models.UpdateRequest
}

// NewRequestRegistry creates an empty registry
func NewRequestRegistry() *RequestRegistry {
	return &RequestRegistry{
		requests: make(map[string]*models.UpdateRequest),
	}
}

// Insert adds a request to the registry. It fails only on an id collision,
// which UUID generation makes unreachable in practice.
func (r *RequestRegistry) Insert(req *models.UpdateRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.requests[req.ID]; exists {
		return fmt.Errorf("request %s already registered", req.ID)
	}
	r.requests[req.ID] = req
	return nil
}

// Get returns the request for id without removing it
func (r *RequestRegistry) Get(id string) (*models.UpdateRequest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	return req, ok
}

// Remove takes the request for id out of the registry. Only the first caller
// for a given id receives the record; all later callers observe absence.
func (r *RequestRegistry) Remove(id string) (*models.UpdateRequest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if ok {
		delete(r.requests, id)
	}
	return req, ok
}

// Len returns the number of pending requests
func (r *RequestRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.requests)
}
