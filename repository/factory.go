package repository

import (
	"log"
	"strings"
	"sync"

	"gorm.io/gorm"
)

// FactoryConfig carries everything backend selection needs. Backend accepts
// "supabase", "file", "memory" and "postgres"; anything else, the empty
// string included, triggers auto-detection.
type FactoryConfig struct {
	Backend      string
	SupabaseURL  string
	SupabaseKey  string
	LinkFilePath string
	DB           *gorm.DB
}

// Factory builds the storage backends once and hands out the same instances
// afterwards. Reset discards them so tests can switch configurations.
type Factory struct {
	mu       sync.Mutex
	cfg      FactoryConfig
	once     sync.Once
	links    LinkStore
	products ProductStore
	backend  string
}

func NewFactory(cfg FactoryConfig) *Factory {
	return &Factory{cfg: cfg}
}

// Links returns the memoized link store.
func (f *Factory) Links() LinkStore {
	f.build()
	return f.links
}

// Products returns the memoized product store.
func (f *Factory) Products() ProductStore {
	f.build()
	return f.products
}

// Backend reports which backend the factory settled on, after downgrades.
func (f *Factory) Backend() string {
	f.build()
	return f.backend
}

// Reset forgets the memoized stores. The next accessor call rebuilds them
// from the current configuration.
func (f *Factory) Reset(cfg FactoryConfig) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfg = cfg
	f.once = sync.Once{}
	f.links = nil
	f.products = nil
	f.backend = ""
}

func (f *Factory) build() {
	f.once.Do(func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.links, f.products, f.backend = selectBackend(f.cfg)
		log.Printf("storage: using %s backend", f.backend)
	})
}

func selectBackend(cfg FactoryConfig) (LinkStore, ProductStore, string) {
	hasSupabase := cfg.SupabaseURL != "" && cfg.SupabaseKey != ""

	switch strings.ToLower(cfg.Backend) {
	case "memory":
		return NewMemoryLinkStore(), NewMemoryProductStore(), "memory"
	case "file":
		return fileBackend(cfg)
	case "postgres":
		if cfg.DB == nil {
			log.Printf("storage: %v: postgres requested without a database connection, falling back to file", ErrBackendUnavailable)
			return fileBackend(cfg)
		}
		links, err := NewGormLinkStore(cfg.DB)
		if err != nil {
			log.Printf("storage: postgres link migration failed: %v, falling back to file", err)
			return fileBackend(cfg)
		}
		products, err := NewGormProductStore(cfg.DB)
		if err != nil {
			log.Printf("storage: postgres product migration failed: %v, falling back to file", err)
			return fileBackend(cfg)
		}
		return links, products, "postgres"
	case "supabase":
		if !hasSupabase {
			log.Printf("storage: %v: supabase requested without credentials, falling back to file", ErrBackendUnavailable)
			return fileBackend(cfg)
		}
		return supabaseBackend(cfg)
	default:
		if hasSupabase {
			return supabaseBackend(cfg)
		}
		return fileBackend(cfg)
	}
}

func supabaseBackend(cfg FactoryConfig) (LinkStore, ProductStore, string) {
	client := NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseKey)
	return NewSupabaseLinkStore(client), NewSupabaseProductStore(client), "supabase"
}

// fileBackend persists links on disk; the product catalog has no file
// representation and stays in memory alongside it.
func fileBackend(cfg FactoryConfig) (LinkStore, ProductStore, string) {
	path := cfg.LinkFilePath
	if path == "" {
		path = "data/redirect-links.json"
	}
	return NewFileLinkStore(path), NewMemoryProductStore(), "file"
}
