package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/kinitros/viralizei-plataforma/models"
	"github.com/kinitros/viralizei-plataforma/utils"
)

// linkDocument is the on-disk shape of the redirect-link file.
type linkDocument struct {
	CustomRedirects []*models.RedirectLink `json:"customRedirects"`
}

// fileMirror holds the last successfully written state per file path. When a
// write fails (read-only filesystem, missing directory) later reads serve the
// mirrored state so the process keeps behaving as if the write stuck.
var fileMirror = struct {
	sync.Mutex
	docs map[string][]*models.RedirectLink
}{docs: make(map[string][]*models.RedirectLink)}

// FileLinkStore persists links to a JSON document on disk. Every operation
// re-reads the file, so concurrent processes see each other's writes subject
// to last-writer-wins on the full document.
type FileLinkStore struct {
	path string
}

func NewFileLinkStore(path string) *FileLinkStore {
	return &FileLinkStore{path: path}
}

func (s *FileLinkStore) load() []*models.RedirectLink {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("file store: read %s failed: %v", s.path, err)
		}
		return s.mirrored()
	}
	var doc linkDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("file store: %s is not valid JSON: %v", s.path, err)
		return s.mirrored()
	}
	s.remember(doc.CustomRedirects)
	return doc.CustomRedirects
}

// save writes the document back, best effort. A failed write is logged and
// mirrored in memory so the change survives within this process.
func (s *FileLinkStore) save(links []*models.RedirectLink) {
	s.remember(links)
	data, err := json.MarshalIndent(linkDocument{CustomRedirects: links}, "", "  ")
	if err != nil {
		log.Printf("file store: marshal failed: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		log.Printf("file store: mkdir for %s failed: %v", s.path, err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		log.Printf("file store: write %s failed: %v", s.path, err)
	}
}

func (s *FileLinkStore) mirrored() []*models.RedirectLink {
	fileMirror.Lock()
	defer fileMirror.Unlock()
	return copyLinks(fileMirror.docs[s.path])
}

func (s *FileLinkStore) remember(links []*models.RedirectLink) {
	fileMirror.Lock()
	defer fileMirror.Unlock()
	fileMirror.docs[s.path] = copyLinks(links)
}

func (s *FileLinkStore) All(ctx context.Context) ([]*models.RedirectLink, error) {
	return copyLinks(s.load()), nil
}

func (s *FileLinkStore) Create(ctx context.Context, draft models.RedirectLinkDraft) (*models.RedirectLink, error) {
	links := s.load()
	if draft.Active && hasActiveDuplicate(links, draft.ServiceKey, draft.Quantity) {
		return nil, ErrConflict
	}
	now := utils.UTCNow()
	link := &models.RedirectLink{
		ID:          uuid.New().String(),
		ServiceKey:  draft.ServiceKey,
		Quantity:    draft.Quantity,
		URL:         draft.URL,
		Description: draft.Description,
		Active:      draft.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	links = append(links, link)
	s.save(links)
	cp := *link
	return &cp, nil
}

func (s *FileLinkStore) Update(ctx context.Context, id string, patch models.RedirectLinkPatch) (*models.RedirectLink, error) {
	links := s.load()
	for _, l := range links {
		if l.ID == id {
			applyLinkPatch(l, patch)
			l.UpdatedAt = utils.UTCNow()
			s.save(links)
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *FileLinkStore) Delete(ctx context.Context, id string) (*models.RedirectLink, error) {
	links := s.load()
	for i, l := range links {
		if l.ID == id {
			removed := *l
			links = append(links[:i], links[i+1:]...)
			s.save(links)
			return &removed, nil
		}
	}
	return nil, nil
}

func (s *FileLinkStore) Find(ctx context.Context, serviceKey string, quantity *int) (*models.RedirectLink, error) {
	if l := findInLinks(s.load(), serviceKey, quantity); l != nil {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}
