package household

import (
	"errors"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
)

// ErrInvalidDocument is returned when a household document is not valid JSON
// or has the wrong shape.
var ErrInvalidDocument = errors.New("invalid household document")

// Decode parses a household document. Fields missing from the document keep
// the defaults of New and unknown fields are ignored.
func Decode(data []byte) (*Household, error) {
	h := New()
	if err := json.Unmarshal(data, h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	h.Normalize()
	return h, nil
}

// Read decodes a household document from r.
func Read(r io.Reader) (*Household, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read household document: %w", err)
	}
	return Decode(data)
}

// Load reads a household document from a file.
func Load(path string) (*Household, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read household file: %w", err)
	}
	h, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, nil
}

// Encode serializes the household as an indented JSON document.
func Encode(h *Household) ([]byte, error) {
	if h == nil {
		return nil, fmt.Errorf("%w: nil household", ErrInvalidDocument)
	}
	h.Normalize()
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode household: %w", err)
	}
	return data, nil
}

// Save writes the household document to path.
func Save(path string, h *Household) error {
	data, err := Encode(h)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write household file: %w", err)
	}
	return nil
}
