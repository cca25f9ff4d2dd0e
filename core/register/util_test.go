package register

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

// memStore keeps the encoded slot like the real stores do.
type memStore struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	saveErr error
}

var _ Store = (*memStore)(nil)

func (s *memStore) Load(ctx context.Context) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DecodeDocument(s.data)
}

func (s *memStore) Save(ctx context.Context, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	data, err := EncodeDocument(doc)
	if err != nil {
		return err
	}
	s.data = data
	s.saves++
	return nil
}

var errDiskFull = errors.New("disk full")

var fixedNow = time.Date(2024, 3, 1, 9, 30, 15, 0, time.Local)

func newTestService(t *testing.T) (*Service, *memStore) {
	nowFunc = func() time.Time { return fixedNow }
	t.Cleanup(func() { nowFunc = time.Now })

	store := new(memStore)
	svc, err := Open(context.Background(), store, nopLogger{})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return svc, store
}

// loggedInWithClass registers Ana and creates her first class.
func loggedInWithClass(t *testing.T) (*Service, *memStore, Class) {
	svc, store := newTestService(t)
	ctx := context.Background()
	if _, err := svc.RegisterTeacher(ctx, NewTeacher{Name: "Ana", Password: "pw1"}); err != nil {
		t.Fatalf("RegisterTeacher() failed: %v", err)
	}
	cls, created, err := svc.CreateClass(ctx, NewClass{Career: "Sistemas", Subject: "BD", Section: "A"})
	if err != nil || !created {
		t.Fatalf("CreateClass() failed: created=%v, %v", created, err)
	}
	return svc, store, cls
}

func addStudent(t *testing.T, svc *Service, ru, ci, name string) Student {
	stu, err := svc.AddStudent(context.Background(), NewStudent{RegistrationNumber: ru, NationalID: ci, Name: name})
	if err != nil {
		t.Fatalf("AddStudent() failed: %v", err)
	}
	return stu
}
