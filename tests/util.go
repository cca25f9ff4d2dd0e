package testutil

import (
	"context"
	"io"
	"testing"

	"github.com/trezcool/asistencia/core/register"
	logsvc "github.com/trezcool/asistencia/services/logger"
	dummystore "github.com/trezcool/asistencia/storage/dummy"
)

// Logger discards everything below errors.
var Logger = logsvc.NewLogrusLogger(io.Discard, "error", "TEST")

// NewService opens a Service on an in-memory slot holding data (may be nil).
func NewService(t *testing.T, data []byte) (*register.Service, *dummystore.Store) {
	store := dummystore.Open(data, Logger)
	svc, err := register.Open(context.Background(), store, Logger)
	if err != nil {
		t.Fatalf("NewService() failed: %v", err)
	}
	return svc, store
}

// CreateTeacher registers a teacher, leaving them logged in.
func CreateTeacher(t *testing.T, svc *register.Service, name, pwd string) register.Teacher {
	teacher, err := svc.RegisterTeacher(context.Background(), register.NewTeacher{Name: name, Password: pwd})
	if err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	return teacher
}

// CreateClass creates a class for the logged in teacher and makes it active.
func CreateClass(t *testing.T, svc *register.Service, career, subject, section string) register.Class {
	cls, created, err := svc.CreateClass(context.Background(), register.NewClass{Career: career, Subject: subject, Section: section})
	if err != nil || !created {
		t.Fatalf("CreateClass() failed: created=%v, %v", created, err)
	}
	return cls
}

// AddStudent adds a student to the active class.
func AddStudent(t *testing.T, svc *register.Service, ru, ci, name, email string) register.Student {
	stu, err := svc.AddStudent(context.Background(), register.NewStudent{RegistrationNumber: ru, NationalID: ci, Name: name, Email: email})
	if err != nil {
		t.Fatalf("AddStudent() failed: %v", err)
	}
	return stu
}
