package filestore

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/asistencia/core"
	"github.com/trezcool/asistencia/core/register"
)

// Store keeps the register in one JSON file.
type Store struct {
	mu   sync.Mutex
	path string
	log  core.Logger
}

var _ register.Store = (*Store)(nil) // interface compliance check

// Open prepares the slot at path, creating its directory if needed.
func Open(path string, logger core.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("empty store path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating store directory")
	}
	return &Store{path: path, log: logger}, nil
}

func (s *Store) Path() string { return s.path }

// Load reads the slot. A missing file is an empty register, and so is a corrupt one (logged).
func (s *Store) Load(ctx context.Context) (register.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return register.Document{}, err
	}
	data, err := ioutil.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return register.EmptyDocument(), nil
		}
		return register.Document{}, errors.Wrapf(err, "reading %s", s.path)
	}
	doc, err := register.DecodeDocument(data)
	if err != nil {
		s.log.Warn("unreadable register, starting empty", errors.Wrapf(err, "decoding %s", s.path))
		return register.EmptyDocument(), nil
	}
	return doc, nil
}

// Save overwrites the slot through a temp file and a rename, so readers never see half a document.
func (s *Store) Save(ctx context.Context, doc register.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := register.EncodeDocument(doc)
	if err != nil {
		return errors.Wrap(err, "encoding register")
	}

	tmp, err := ioutil.TempFile(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrapf(err, "replacing %s", s.path)
	}
	return nil
}
