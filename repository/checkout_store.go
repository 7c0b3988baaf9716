package repository

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// checkoutDocument is the on-disk shape of the checkout override file.
type checkoutDocument struct {
	Links map[string]string `json:"links"`
}

// CheckoutStore maps fully qualified checkout keys, "<serviceKey>.<qty>" or
// "<serviceKey>.default", to externally hosted checkout URLs. It persists to
// a JSON file best effort and keeps an in-memory copy so lookups keep working
// on read-only filesystems.
type CheckoutStore struct {
	mu    sync.Mutex
	path  string
	links map[string]string
	read  bool
}

func NewCheckoutStore(path string) *CheckoutStore {
	return &CheckoutStore{path: path, links: make(map[string]string)}
}

func (s *CheckoutStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) && !s.read {
			log.Printf("checkout store: read %s failed: %v", s.path, err)
		}
		s.read = true
		return
	}
	var doc checkoutDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("checkout store: %s is not valid JSON: %v", s.path, err)
		s.read = true
		return
	}
	if doc.Links != nil {
		s.links = doc.Links
	}
	s.read = true
}

func (s *CheckoutStore) save() {
	data, err := json.MarshalIndent(checkoutDocument{Links: s.links}, "", "  ")
	if err != nil {
		log.Printf("checkout store: marshal failed: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		log.Printf("checkout store: mkdir for %s failed: %v", s.path, err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		log.Printf("checkout store: write %s failed: %v", s.path, err)
	}
}

// Get returns the URL stored for key, or "" when none is set.
func (s *CheckoutStore) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.read {
		s.load()
	}
	return s.links[key]
}

// All returns a copy of every stored mapping.
func (s *CheckoutStore) All() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.read {
		s.load()
	}
	out := make(map[string]string, len(s.links))
	for k, v := range s.links {
		out[k] = v
	}
	return out
}

// Set stores or replaces the URL for key.
func (s *CheckoutStore) Set(key, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.read {
		s.load()
	}
	s.links[key] = url
	s.save()
}

// Delete removes the mapping for key and reports whether it existed.
func (s *CheckoutStore) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.read {
		s.load()
	}
	if _, ok := s.links[key]; !ok {
		return false
	}
	delete(s.links, key)
	s.save()
	return true
}
