// Package guest persists favorites for unauthenticated sessions.
// Entries are stored in ~/.local/share/shopfront/favorites.toml and survive
// restarts; they are migrated to the account and cleared on login. Access
// from concurrent processes is last-write-wins with no coordination.
package guest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"

	"github.com/Filichkin/OnlineShop-sub001/internal/api"
)

const defaultStorePath = "~/.local/share/shopfront/favorites.toml"

// Entry is one favorited product. Enough of the product is kept to render
// the favorites view offline; price is stored as a string because TOML has
// no decimal type.
type Entry struct {
	ID         int64  `toml:"id"`
	Name       string `toml:"name"`
	Price      string `toml:"price"`
	MainImage  string `toml:"main_image"`
	PartNumber string `toml:"part_number"`
}

// Product converts the entry back to the API product shape.
func (e Entry) Product() api.Product {
	price, err := decimal.NewFromString(e.Price)
	if err != nil {
		price = decimal.Zero
	}
	return api.Product{
		ID:         e.ID,
		Name:       e.Name,
		Price:      price,
		MainImage:  e.MainImage,
		PartNumber: e.PartNumber,
	}
}

type document struct {
	Items []Entry `toml:"items"`
}

// Store reads and writes the guest favorites file. The zero file (absent,
// unreadable, malformed) degrades to an empty set; losing guest favorites
// is preferable to failing a page render.
type Store struct {
	mu   sync.Mutex
	path string
}

// DefaultPath returns the default guest store location.
func DefaultPath() string { return defaultStorePath }

// Open resolves the store path. An empty path uses the default.
func Open(path string) (*Store, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve guest store path: %w", err)
	}
	return &Store{path: resolved}, nil
}

// List returns all entries in insertion order.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().Items
}

// Products returns all entries converted to API products.
func (s *Store) Products() []api.Product {
	entries := s.List()
	products := make([]api.Product, 0, len(entries))
	for _, e := range entries {
		products = append(products, e.Product())
	}
	return products
}

// Contains reports membership by product id.
func (s *Store) Contains(productID int64) bool {
	for _, e := range s.List() {
		if e.ID == productID {
			return true
		}
	}
	return false
}

// Add appends a product unless it is already present.
func (s *Store) Add(p api.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	for _, e := range doc.Items {
		if e.ID == p.ID {
			return nil
		}
	}
	doc.Items = append(doc.Items, Entry{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price.String(),
		MainImage:  p.MainImage,
		PartNumber: p.PartNumber,
	})
	return s.save(doc)
}

// Remove deletes a product by id. Removing an absent id is a no-op.
func (s *Store) Remove(productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	for i, e := range doc.Items {
		if e.ID == productID {
			doc.Items = append(doc.Items[:i], doc.Items[i+1:]...)
			return s.save(doc)
		}
	}
	return nil
}

// Clear deletes the whole store. Called after login migration and on every
// logout so the next user of this machine inherits nothing.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear guest store: %w", err)
	}
	return nil
}

func (s *Store) load() document {
	var doc document
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return doc
	}
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return document{}
	}
	return doc
}

func (s *Store) save(doc document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create guest store dir: %w", err)
	}
	raw, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal guest store: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write guest store: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = defaultStorePath
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
