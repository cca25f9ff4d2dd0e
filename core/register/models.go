package register

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/asistencia/core"
)

// Attendance statuses. A student missing from a date map is unmarked.
const (
	StatusPresent  = "presente"
	StatusAbsent   = "ausente"
	StatusUnmarked = "sin-marcar"
)

const timeLayout = "15:04:05"

// id prefixes
const (
	teacherIDPrefix = "doc_"
	classIDPrefix   = "clase_"
	studentIDPrefix = "st_"
)

type Teacher struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// SetPassword stores pwd as is, or as a bcrypt hash when hash is set.
func (t *Teacher) SetPassword(pwd string, hash bool) error {
	if !hash {
		t.Password = pwd
		return nil
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	t.Password = string(h)
	return nil
}

// CheckPassword compares pwd with the stored password, plain or bcrypt-hashed.
func (t *Teacher) CheckPassword(pwd string) bool {
	if isBcryptHash(t.Password) {
		return bcrypt.CompareHashAndPassword([]byte(t.Password), []byte(pwd)) == nil
	}
	return t.Password == pwd
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}

type Class struct {
	ID      string `json:"id"`
	Career  string `json:"career"`
	Subject string `json:"subject"`
	Section string `json:"section"`
}

// Label is how a class shows up in selects: "career - subject (section)".
func (c Class) Label() string {
	return c.Career + " - " + c.Subject + " (" + c.Section + ")"
}

type Student struct {
	ID                 string `json:"id"`
	RegistrationNumber string `json:"registrationNumber"`
	NationalID         string `json:"nationalId"`
	Name               string `json:"name"`
	Email              string `json:"email"`
}

type Record struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// Credentials are used to log in.
type Credentials struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate() error {
	c.Name = core.CleanString(c.Name)
	c.Password = core.CleanString(c.Password)
	return core.Validate.Struct(c)
}

// NewTeacher contains information needed to register a Teacher.
type NewTeacher struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (nt *NewTeacher) Validate() error {
	nt.Name = core.CleanString(nt.Name)
	nt.Password = core.CleanString(nt.Password)
	return core.Validate.Struct(nt)
}

// NewClass contains information needed to create a Class.
type NewClass struct {
	Career  string `json:"career" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Section string `json:"section" validate:"required"`
}

func (nc *NewClass) Validate() error {
	nc.Career = core.CleanString(nc.Career)
	nc.Subject = core.CleanString(nc.Subject)
	nc.Section = core.CleanString(nc.Section)
	return core.Validate.Struct(nc)
}

// NewStudent contains information needed to roster a Student.
type NewStudent struct {
	RegistrationNumber string `json:"registrationNumber" validate:"required"`
	NationalID         string `json:"nationalId" validate:"required"`
	Name               string `json:"name" validate:"required"`
	Email              string `json:"email"`
}

func (ns *NewStudent) Validate() error {
	ns.RegistrationNumber = core.CleanString(ns.RegistrationNumber)
	ns.NationalID = core.CleanString(ns.NationalID)
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email)
	return core.Validate.Struct(ns)
}

// UpdateStudent is the full set of proposed values for an existing Student.
// It is validated and applied as one unit.
type UpdateStudent struct {
	RegistrationNumber string `json:"registrationNumber" validate:"required"`
	NationalID         string `json:"nationalId" validate:"required"`
	Name               string `json:"name" validate:"required"`
	Email              string `json:"email"`
}

func (us *UpdateStudent) Validate() error {
	us.RegistrationNumber = core.CleanString(us.RegistrationNumber)
	us.NationalID = core.CleanString(us.NationalID)
	us.Name = core.CleanString(us.Name)
	us.Email = core.CleanString(us.Email)
	return core.Validate.Struct(us)
}

// Term holds the academic term fields attached to the whole session.
type Term struct {
	AcademicTerm string `json:"academicTerm"`
	Period       string `json:"period" validate:"period"`
}

func (t *Term) Validate() error {
	t.AcademicTerm = core.CleanString(t.AcademicTerm)
	t.Period = core.CleanString(t.Period)
	return core.Validate.Struct(t)
}

// Mark is one attendance mark request.
type Mark struct {
	Date      string `json:"date" validate:"isodate"`
	StudentID string `json:"studentId" validate:"required"`
	Status    string `json:"status" validate:"oneof=presente ausente"`
}

func (m *Mark) Validate() error {
	m.Date = core.CleanString(m.Date)
	m.StudentID = core.CleanString(m.StudentID)
	m.Status = core.CleanString(m.Status, true /* lower */)
	return core.Validate.Struct(m)
}
