// Package store keeps saved clients as JSON documents in a directory, one
// file per client.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/iwvelando/finance-workbook/internal/household"
	"github.com/iwvelando/finance-workbook/pkg/datetime"
	"go.uber.org/zap"
)

const fileExt = ".json"

// ErrClientNotFound is returned when no client is saved under an id.
var ErrClientNotFound = errors.New("client not found")

// Entry describes a saved client without its household document.
type Entry struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Updated time.Time `json:"updated"`
}

// Client is a saved client together with its household document.
type Client struct {
	Entry
	Household *household.Household `json:"data"`
}

type record struct {
	Entry
	Data json.RawMessage `json:"data"`
}

// Store is a file-backed client list. It is safe for concurrent use.
type Store struct {
	dir    string
	logger *zap.Logger
	now    datetime.Clock

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the clock used to stamp saved clients.
func WithClock(now datetime.Clock) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New opens the store in dir, creating the directory when it is missing.
func New(logger *zap.Logger, dir string, opts ...Option) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("store directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	s := &Store{dir: dir, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// Create saves the household as a new client named after its first person.
func (s *Store) Create(h *household.Household) (Client, error) {
	if h == nil {
		return Client{}, fmt.Errorf("%w: nil household", household.ErrInvalidDocument)
	}
	return s.create(h.Name(), h)
}

// Import saves a raw household document as a new client. When the document
// names no person, fallbackName is used instead.
func (s *Store) Import(data []byte, fallbackName string) (Client, error) {
	h, err := household.Decode(data)
	if err != nil {
		return Client{}, err
	}
	name := h.Persons[0].FullName()
	if name == "" {
		name = strings.TrimSuffix(strings.TrimSpace(fallbackName), fileExt)
	}
	if name == "" {
		name = h.Name()
	}
	return s.create(name, h)
}

func (s *Store) create(name string, h *household.Household) (Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Client{
		Entry:     Entry{ID: uuid.NewString(), Name: name, Updated: s.now().UTC()},
		Household: h,
	}
	if err := s.write(c); err != nil {
		return Client{}, err
	}
	s.logger.Info("saved new client",
		zap.String("op", "store.Create"),
		zap.String("id", c.ID),
		zap.String("name", c.Name),
	)
	return c, nil
}

// Overwrite replaces the household of an existing client and refreshes its
// timestamp. The client keeps its name.
func (s *Store) Overwrite(id string, h *household.Household) (Client, error) {
	if h == nil {
		return Client{}, fmt.Errorf("%w: nil household", household.ErrInvalidDocument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read(id)
	if err != nil {
		return Client{}, err
	}
	c := Client{Entry: rec.Entry, Household: h}
	c.Updated = s.now().UTC()
	if err := s.write(c); err != nil {
		return Client{}, err
	}
	s.logger.Info("overwrote client",
		zap.String("op", "store.Overwrite"),
		zap.String("id", id),
	)
	return c, nil
}

// Get loads a saved client.
func (s *Store) Get(id string) (Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read(id)
	if err != nil {
		return Client{}, err
	}
	h, err := household.Decode(rec.Data)
	if err != nil {
		return Client{}, fmt.Errorf("client %s: %w", id, err)
	}
	return Client{Entry: rec.Entry, Household: h}, nil
}

// Delete removes a saved client.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrClientNotFound, id)
		}
		return fmt.Errorf("failed to delete client %s: %w", id, err)
	}
	s.logger.Info("deleted client",
		zap.String("op", "store.Delete"),
		zap.String("id", id),
	)
	return nil
}

// List returns the saved clients whose name contains search, ignoring case,
// most recently updated first. Unreadable files are skipped.
func (s *Store) List(search string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != fileExt {
			continue
		}
		rec, err := s.read(strings.TrimSuffix(f.Name(), fileExt))
		if err != nil {
			s.logger.Warn("skipping unreadable client file",
				zap.String("op", "store.List"),
				zap.String("file", f.Name()),
				zap.Error(err),
			)
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(rec.Name), needle) {
			continue
		}
		entries = append(entries, rec.Entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Updated.Equal(entries[j].Updated) {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Updated.After(entries[j].Updated)
	})
	return entries, nil
}

func (s *Store) path(id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: %q", ErrClientNotFound, id)
	}
	return filepath.Join(s.dir, id+fileExt), nil
}

func (s *Store) read(id string) (record, error) {
	path, err := s.path(id)
	if err != nil {
		return record{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return record{}, fmt.Errorf("%w: %s", ErrClientNotFound, id)
		}
		return record{}, fmt.Errorf("failed to read client %s: %w", id, err)
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return record{}, fmt.Errorf("client %s: %w: %v", id, household.ErrInvalidDocument, err)
	}
	rec.ID = id
	return rec, nil
}

// write stores the client through a temporary file so that a failed write
// never truncates an existing document.
func (s *Store) write(c Client) error {
	path, err := s.path(c.ID)
	if err != nil {
		return err
	}
	doc, err := household.Encode(c.Household)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(record{Entry: c.Entry, Data: doc}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode client %s: %w", c.ID, err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+c.ID+"-*")
	if err != nil {
		return fmt.Errorf("failed to write client %s: %w", c.ID, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write client %s: %w", c.ID, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write client %s: %w", c.ID, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write client %s: %w", c.ID, err)
	}
	return nil
}
