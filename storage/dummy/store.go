package dummystore

import (
	"context"
	"sync"

	"github.com/trezcool/asistencia/core"
	"github.com/trezcool/asistencia/core/register"
)

// Store is an in-memory slot. It keeps the encoded bytes so that every
// round trip goes through the same JSON as the file store.
type Store struct {
	sync.RWMutex
	data    []byte
	saves   int
	saveErr error
	log     core.Logger
}

var _ register.Store = (*Store)(nil) // interface compliance check

// Open returns a Store holding data (may be nil).
func Open(data []byte, logger core.Logger) *Store {
	return &Store{data: data, log: logger}
}

func (s *Store) Load(ctx context.Context) (register.Document, error) {
	s.RLock()
	defer s.RUnlock()

	doc, err := register.DecodeDocument(s.data)
	if err != nil {
		s.log.Warn("unreadable register, starting empty", err)
		return register.EmptyDocument(), nil
	}
	return doc, nil
}

func (s *Store) Save(ctx context.Context, doc register.Document) error {
	s.Lock()
	defer s.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}
	data, err := register.EncodeDocument(doc)
	if err != nil {
		return err
	}
	s.data = data
	s.saves++
	return nil
}

// Bytes returns the last saved slot content.
func (s *Store) Bytes() []byte {
	s.RLock()
	defer s.RUnlock()
	return append([]byte(nil), s.data...)
}

// Saves counts successful saves.
func (s *Store) Saves() int {
	s.RLock()
	defer s.RUnlock()
	return s.saves
}

// FailSaves makes every following Save return err; nil restores normal saves.
func (s *Store) FailSaves(err error) {
	s.Lock()
	defer s.Unlock()
	s.saveErr = err
}
