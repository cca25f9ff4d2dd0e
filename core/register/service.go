package register

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/asistencia/core"
)

var (
	// errors
	ErrTeacherNotFound    = errors.New("teacher not found")
	ErrWrongPassword      = errors.New("wrong password")
	ErrTeacherExists      = errors.New("a teacher with this name already exists")
	ErrNotLoggedIn        = errors.New("no teacher logged in")
	ErrNoClass            = errors.New("no class selected")
	ErrClassNotFound      = errors.New("class not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrRegistrationExists = errors.New("a student with this registration number already exists in this class")

	nowFunc   = time.Now // mockable
	newIDFunc = func(prefix string) string { return prefix + uuid.New().String() }
)

type (
	// Store persists the whole register as one Document in one slot.
	Store interface {
		// Load returns EmptyDocument when the slot holds nothing usable.
		Load(ctx context.Context) (Document, error)
		// Save overwrites the slot with doc.
		Save(ctx context.Context, doc Document) error
	}

	// Service runs the register commands against one State and saves after every change.
	Service struct {
		mu            sync.RWMutex
		st            *State
		store         Store
		log           core.Logger
		hashPasswords bool
	}
)

// Open loads the register from store.
func Open(ctx context.Context, store Store, logger core.Logger) (*Service, error) {
	doc, err := store.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading register")
	}
	return &Service{
		st:            Restore(doc),
		store:         store,
		log:           logger,
		hashPasswords: core.Conf.GetBool("hashPasswords"),
	}, nil
}

// Read runs fn with the State locked for reading. fn must not keep st.
func (svc *Service) Read(fn func(st *State)) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	fn(svc.st)
}

// commit runs fn under the write lock and saves when fn reports a change.
// fn validates before it mutates; when the save fails the previous state is put back.
func (svc *Service) commit(ctx context.Context, fn func(st *State) (bool, error)) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	prev := svc.st.Document()
	changed, err := fn(svc.st)
	if err != nil || !changed {
		return err
	}
	if err := svc.store.Save(ctx, svc.st.Document()); err != nil {
		svc.st = Restore(prev)
		return errors.Wrap(err, "saving register")
	}
	return nil
}

func (svc *Service) Login(ctx context.Context, creds Credentials) (Teacher, error) {
	if err := creds.Validate(); err != nil {
		return Teacher{}, err
	}
	var t Teacher
	err := svc.commit(ctx, func(st *State) (bool, error) {
		var ok bool
		if t, ok = st.teacherByName(creds.Name); !ok {
			return false, ErrTeacherNotFound
		}
		if !t.CheckPassword(creds.Password) {
			return false, ErrWrongPassword
		}
		st.currentTeacherID = t.ID
		st.currentClassID = ""
		return true, nil
	})
	if err != nil {
		return Teacher{}, err
	}
	svc.log.Info("teacher logged in", t)
	return t, nil
}

func (svc *Service) RegisterTeacher(ctx context.Context, nt NewTeacher) (Teacher, error) {
	if err := nt.Validate(); err != nil {
		return Teacher{}, err
	}
	t := Teacher{ID: newIDFunc(teacherIDPrefix), Name: nt.Name}
	if err := t.SetPassword(nt.Password, svc.hashPasswords); err != nil {
		return Teacher{}, errors.Wrap(err, "setting password")
	}
	err := svc.commit(ctx, func(st *State) (bool, error) {
		if _, exists := st.teacherByName(nt.Name); exists {
			return false, core.NewValidationError(ErrTeacherExists, core.FieldError{Field: "name", Error: ErrTeacherExists.Error()})
		}
		st.addTeacher(t)
		st.currentTeacherID = t.ID
		st.currentClassID = ""
		return true, nil
	})
	if err != nil {
		return Teacher{}, err
	}
	svc.log.Info("teacher registered", t)
	return t, nil
}

func (svc *Service) Logout(ctx context.Context) error {
	return svc.commit(ctx, func(st *State) (bool, error) {
		if st.currentTeacherID == "" && st.currentClassID == "" {
			return false, nil
		}
		st.currentTeacherID = ""
		st.currentClassID = ""
		return true, nil
	})
}

// CreateClass creates a Class for the current Teacher and makes it active.
// An incomplete NewClass is ignored: created is false and err is nil.
func (svc *Service) CreateClass(ctx context.Context, nc NewClass) (cls Class, created bool, err error) {
	invalid := nc.Validate() != nil
	err = svc.commit(ctx, func(st *State) (bool, error) {
		t, ok := st.CurrentTeacher()
		if !ok {
			return false, ErrNotLoggedIn
		}
		if invalid {
			return false, nil
		}
		cls = Class{
			ID:      newIDFunc(classIDPrefix),
			Career:  nc.Career,
			Subject: nc.Subject,
			Section: nc.Section,
		}
		st.addClass(t.ID, cls)
		st.currentClassID = cls.ID
		created = true
		return true, nil
	})
	if err != nil || !created {
		return Class{}, false, err
	}
	svc.log.Info("class created", svc.teacher(), map[string]interface{}{"class": cls.ID})
	return cls, true, nil
}

// SelectClass makes one of the current Teacher's classes active. An empty id clears it.
func (svc *Service) SelectClass(ctx context.Context, classID string) error {
	classID = core.CleanString(classID)
	return svc.commit(ctx, func(st *State) (bool, error) {
		if st.currentTeacherID == "" {
			return false, ErrNotLoggedIn
		}
		if classID != "" && st.classOwner[classID] != st.currentTeacherID {
			return false, ErrClassNotFound
		}
		if st.currentClassID == classID {
			return false, nil
		}
		st.currentClassID = classID
		return true, nil
	})
}

func (svc *Service) AddStudent(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(); err != nil {
		return Student{}, err
	}
	var stu Student
	err := svc.commit(ctx, func(st *State) (bool, error) {
		cls, err := currentClass(st)
		if err != nil {
			return false, err
		}
		if err := checkRegistrationUniqueness(st, cls.ID, ns.RegistrationNumber, ""); err != nil {
			return false, err
		}
		stu = Student{
			ID:                 newIDFunc(studentIDPrefix),
			RegistrationNumber: ns.RegistrationNumber,
			NationalID:         ns.NationalID,
			Name:               ns.Name,
			Email:              ns.Email,
		}
		st.addStudent(cls.ID, stu)
		return true, nil
	})
	if err != nil {
		return Student{}, err
	}
	svc.log.Debug("student added", svc.teacher(), map[string]interface{}{"student": stu.ID})
	return stu, nil
}

// UpdateStudent replaces every field of a rostered Student at once, or nothing at all.
func (svc *Service) UpdateStudent(ctx context.Context, studentID string, us UpdateStudent) (Student, error) {
	if err := us.Validate(); err != nil {
		return Student{}, err
	}
	var stu Student
	err := svc.commit(ctx, func(st *State) (bool, error) {
		cls, err := currentClass(st)
		if err != nil {
			return false, err
		}
		orig, ok := st.Student(cls.ID, studentID)
		if !ok {
			return false, ErrStudentNotFound
		}
		if err := checkRegistrationUniqueness(st, cls.ID, us.RegistrationNumber, orig.ID); err != nil {
			return false, err
		}
		stu = Student{
			ID:                 orig.ID,
			RegistrationNumber: us.RegistrationNumber,
			NationalID:         us.NationalID,
			Name:               us.Name,
			Email:              us.Email,
		}
		if stu == orig {
			return false, nil
		}
		st.replaceStudent(cls.ID, stu)
		return true, nil
	})
	if err != nil {
		return Student{}, err
	}
	return stu, nil
}

// DeleteStudent removes a Student and all of their records in the active class.
func (svc *Service) DeleteStudent(ctx context.Context, studentID string) error {
	err := svc.commit(ctx, func(st *State) (bool, error) {
		cls, err := currentClass(st)
		if err != nil {
			return false, err
		}
		if _, ok := st.Student(cls.ID, studentID); !ok {
			return false, ErrStudentNotFound
		}
		st.removeStudent(cls.ID, studentID)
		return true, nil
	})
	if err != nil {
		return err
	}
	svc.log.Info("student deleted", svc.teacher(), map[string]interface{}{"student": studentID})
	return nil
}

// Mark records one status for one student on one date, overwriting any previous mark.
// Only "presente" carries a time; "ausente" stores an empty one.
func (svc *Service) Mark(ctx context.Context, m Mark) (Record, error) {
	if err := m.Validate(); err != nil {
		return Record{}, err
	}
	rec := Record{Status: m.Status}
	if m.Status == StatusPresent {
		rec.Time = nowFunc().Format(timeLayout)
	}
	err := svc.commit(ctx, func(st *State) (bool, error) {
		cls, err := currentClass(st)
		if err != nil {
			return false, err
		}
		if _, ok := st.Student(cls.ID, m.StudentID); !ok {
			return false, ErrStudentNotFound
		}
		st.setRecord(cls.ID, m.Date, m.StudentID, rec)
		return true, nil
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// MarkAllPresent marks every rostered student present on date with one shared time.
func (svc *Service) MarkAllPresent(ctx context.Context, date string) (int, error) {
	date = core.CleanString(date)
	if err := checkDate(date); err != nil {
		return 0, err
	}
	rec := Record{Status: StatusPresent, Time: nowFunc().Format(timeLayout)}
	var n int
	err := svc.commit(ctx, func(st *State) (bool, error) {
		cls, err := currentClass(st)
		if err != nil {
			return false, err
		}
		if st.records[cls.ID] == nil {
			st.records[cls.ID] = make(map[string]map[string]Record)
		}
		if st.records[cls.ID][date] == nil {
			st.records[cls.ID][date] = make(map[string]Record)
		}
		for _, sid := range st.classStudents[cls.ID] {
			st.setRecord(cls.ID, date, sid, rec)
			n++
		}
		return true, nil
	})
	if err != nil {
		return 0, err
	}
	svc.log.Debug("all marked present", svc.teacher(), map[string]interface{}{"date": date, "students": n})
	return n, nil
}

// ClearDay drops every record of the active class on date. It reports whether there was anything to drop.
func (svc *Service) ClearDay(ctx context.Context, date string) (bool, error) {
	date = core.CleanString(date)
	if err := checkDate(date); err != nil {
		return false, err
	}
	var cleared bool
	err := svc.commit(ctx, func(st *State) (bool, error) {
		cls, err := currentClass(st)
		if err != nil {
			return false, err
		}
		cleared = st.clearDay(cls.ID, date)
		return cleared, nil
	})
	if err != nil {
		return false, err
	}
	if cleared {
		svc.log.Info("day cleared", svc.teacher(), map[string]interface{}{"date": date})
	}
	return cleared, nil
}

// SetTerm updates the academic term fields.
func (svc *Service) SetTerm(ctx context.Context, term Term) error {
	if err := term.Validate(); err != nil {
		return err
	}
	return svc.commit(ctx, func(st *State) (bool, error) {
		if st.academicTerm == term.AcademicTerm && st.period == term.Period {
			return false, nil
		}
		st.academicTerm = term.AcademicTerm
		st.period = term.Period
		return true, nil
	})
}

type (
	// ImportResult lists what ImportStudents did with each row.
	ImportResult struct {
		Added   []Student  `json:"added"`
		Skipped []RowError `json:"skipped"`
	}

	RowError struct {
		Row   int    `json:"row"`
		Error string `json:"error"`
	}
)

// ImportStudents adds rows to the active class with the AddStudent rules.
// Invalid rows are skipped and reported; the rest are saved together.
// Row numbers are 1-based positions in rows, offset by firstRow.
func (svc *Service) ImportStudents(ctx context.Context, rows []NewStudent, firstRow int) (ImportResult, error) {
	var res ImportResult
	err := svc.commit(ctx, func(st *State) (bool, error) {
		cls, err := currentClass(st)
		if err != nil {
			return false, err
		}
		for i := range rows {
			ns := rows[i]
			rowNum := firstRow + i
			if err := ns.Validate(); err != nil {
				res.Skipped = append(res.Skipped, RowError{Row: rowNum, Error: Describe(err)})
				continue
			}
			if err := checkRegistrationUniqueness(st, cls.ID, ns.RegistrationNumber, ""); err != nil {
				res.Skipped = append(res.Skipped, RowError{Row: rowNum, Error: Describe(err)})
				continue
			}
			stu := Student{
				ID:                 newIDFunc(studentIDPrefix),
				RegistrationNumber: ns.RegistrationNumber,
				NationalID:         ns.NationalID,
				Name:               ns.Name,
				Email:              ns.Email,
			}
			st.addStudent(cls.ID, stu)
			res.Added = append(res.Added, stu)
		}
		return len(res.Added) > 0, nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	svc.log.Info("students imported", svc.teacher(), map[string]interface{}{"added": len(res.Added), "skipped": len(res.Skipped)})
	return res, nil
}

// teacher is the current Teacher for log lines; zero when logged out.
func (svc *Service) teacher() Teacher {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	t, _ := svc.st.CurrentTeacher()
	return t
}

func currentClass(st *State) (Class, error) {
	if _, ok := st.CurrentTeacher(); !ok {
		return Class{}, ErrNotLoggedIn
	}
	cls, ok := st.CurrentClass()
	if !ok {
		return Class{}, ErrNoClass
	}
	return cls, nil
}

// checkRegistrationUniqueness fails when another student of the class has regNum (case-insensitive).
func checkRegistrationUniqueness(st *State, classID, regNum, excludedID string) error {
	for _, stu := range st.students[classID] {
		if stu.ID != excludedID && strings.EqualFold(stu.RegistrationNumber, regNum) {
			return core.NewValidationError(
				ErrRegistrationExists,
				core.FieldError{Field: "registrationNumber", Error: ErrRegistrationExists.Error()},
			)
		}
	}
	return nil
}

func checkDate(date string) error {
	if !core.ValidDate(date) {
		return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "date must be a date in the YYYY-MM-DD format"})
	}
	return nil
}

// Describe turns validation errors into one readable line.
func Describe(err error) string {
	if flds := core.FieldErrors(err); len(flds) > 0 {
		parts := make([]string, 0, len(flds))
		for _, f := range flds {
			parts = append(parts, f.Field+": "+f.Error)
		}
		return strings.Join(parts, "; ")
	}
	return err.Error()
}
