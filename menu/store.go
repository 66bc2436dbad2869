package menu

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"aurevo-menu/models"
)

// Store reads the menu document from a JSON file. The file is read on every
// Load so edits show up without a restart.
type Store struct {
	path string
}

// NewStore creates a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file the store reads from.
func (s *Store) Path() string {
	return s.path
}

// Load returns the current menu. A missing or malformed file yields an empty
// document rather than an error.
func (s *Store) Load() models.MenuDocument {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("menu file not found", slog.String("path", s.path))
		} else {
			slog.Warn("menu file unreadable", slog.String("path", s.path), slog.String("error", err.Error()))
		}
		return models.EmptyMenu()
	}

	var doc models.MenuDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Warn("menu file malformed", slog.String("path", s.path), slog.String("error", err.Error()))
		return models.EmptyMenu()
	}

	if doc.Categories == nil {
		doc.Categories = []models.Category{}
	}
	if doc.Items == nil {
		doc.Items = []models.MenuItem{}
	}
	return doc
}
