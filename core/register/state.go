package register

import (
	"bytes"
	"encoding/json"
	"sort"
)

type (
	// Document is the persisted shape of the whole register: one JSON blob in one slot.
	Document struct {
		Teachers         map[string]TeacherDocument              `json:"teachers"`
		CurrentTeacherID string                                  `json:"currentTeacherId"`
		CurrentClassID   string                                  `json:"currentClassId"`
		AcademicTerm     string                                  `json:"academicTerm"`
		Period           string                                  `json:"period"`
		StudentsByClass  map[string][]Student                    `json:"studentsByClass"`
		RecordsByClass   map[string]map[string]map[string]Record `json:"recordsByClass"`
	}

	TeacherDocument struct {
		ID       string           `json:"id"`
		Name     string           `json:"name"`
		Password string           `json:"password"`
		Classes  map[string]Class `json:"classes"`
	}
)

// EmptyDocument is the default document used when the slot is empty or unreadable.
func EmptyDocument() Document {
	return Document{
		Teachers:        make(map[string]TeacherDocument),
		StudentsByClass: make(map[string][]Student),
		RecordsByClass:  make(map[string]map[string]map[string]Record),
	}
}

// State is the in-memory register: entities by id plus the indexes between them.
// It is not safe for concurrent use; Service serializes access to it.
type State struct {
	teachers map[string]*Teacher
	classes  map[string]*Class
	students map[string]map[string]*Student // class id -> student id -> student

	classOwner     map[string]string   // class id -> teacher id
	teacherClasses map[string][]string // teacher id -> class ids
	classStudents  map[string][]string // class id -> student ids, roster order
	records        map[string]map[string]map[string]Record

	currentTeacherID string
	currentClassID   string
	academicTerm     string
	period           string
}

func NewState() *State {
	return &State{
		teachers:       make(map[string]*Teacher),
		classes:        make(map[string]*Class),
		students:       make(map[string]map[string]*Student),
		classOwner:     make(map[string]string),
		teacherClasses: make(map[string][]string),
		classStudents:  make(map[string][]string),
		records:        make(map[string]map[string]map[string]Record),
	}
}

// Restore builds a State from a persisted Document.
func Restore(doc Document) *State {
	st := NewState()
	st.currentTeacherID = doc.CurrentTeacherID
	st.currentClassID = doc.CurrentClassID
	st.academicTerm = doc.AcademicTerm
	st.period = doc.Period

	tids := make([]string, 0, len(doc.Teachers))
	for tid := range doc.Teachers {
		tids = append(tids, tid)
	}
	sort.Strings(tids)
	for _, tid := range tids {
		td := doc.Teachers[tid]
		st.teachers[tid] = &Teacher{ID: tid, Name: td.Name, Password: td.Password}

		cids := make([]string, 0, len(td.Classes))
		for cid := range td.Classes {
			cids = append(cids, cid)
		}
		sort.Strings(cids)
		for _, cid := range cids {
			cls := td.Classes[cid]
			cls.ID = cid
			st.classes[cid] = &cls
			st.classOwner[cid] = tid
			st.teacherClasses[tid] = append(st.teacherClasses[tid], cid)
		}
	}

	for cid, roster := range doc.StudentsByClass {
		ids := make([]string, 0, len(roster))
		byID := make(map[string]*Student, len(roster))
		for i := range roster {
			stu := roster[i]
			if _, dup := byID[stu.ID]; dup {
				continue
			}
			byID[stu.ID] = &stu
			ids = append(ids, stu.ID)
		}
		st.students[cid] = byID
		st.classStudents[cid] = ids
	}

	for cid, byDate := range doc.RecordsByClass {
		dates := make(map[string]map[string]Record, len(byDate))
		for date, byStudent := range byDate {
			recs := make(map[string]Record, len(byStudent))
			for sid, rec := range byStudent {
				recs[sid] = rec
			}
			dates[date] = recs
		}
		st.records[cid] = dates
	}
	return st
}

// Document converts the State back to its persisted shape.
func (st *State) Document() Document {
	doc := EmptyDocument()
	doc.CurrentTeacherID = st.currentTeacherID
	doc.CurrentClassID = st.currentClassID
	doc.AcademicTerm = st.academicTerm
	doc.Period = st.period

	for tid, t := range st.teachers {
		td := TeacherDocument{
			ID:       tid,
			Name:     t.Name,
			Password: t.Password,
			Classes:  make(map[string]Class, len(st.teacherClasses[tid])),
		}
		for _, cid := range st.teacherClasses[tid] {
			td.Classes[cid] = *st.classes[cid]
		}
		doc.Teachers[tid] = td
	}

	for cid, ids := range st.classStudents {
		roster := make([]Student, 0, len(ids))
		for _, sid := range ids {
			roster = append(roster, *st.students[cid][sid])
		}
		doc.StudentsByClass[cid] = roster
	}

	for cid, byDate := range st.records {
		dates := make(map[string]map[string]Record, len(byDate))
		for date, byStudent := range byDate {
			recs := make(map[string]Record, len(byStudent))
			for sid, rec := range byStudent {
				recs[sid] = rec
			}
			dates[date] = recs
		}
		doc.RecordsByClass[cid] = dates
	}
	return doc
}

// mutators; callers validate first

func (st *State) addTeacher(t Teacher) {
	st.teachers[t.ID] = &t
}

func (st *State) addClass(teacherID string, cls Class) {
	st.classes[cls.ID] = &cls
	st.classOwner[cls.ID] = teacherID
	st.teacherClasses[teacherID] = append(st.teacherClasses[teacherID], cls.ID)
	st.classStudents[cls.ID] = []string{}
	st.students[cls.ID] = make(map[string]*Student)
}

func (st *State) addStudent(classID string, stu Student) {
	if st.students[classID] == nil {
		st.students[classID] = make(map[string]*Student)
	}
	st.students[classID][stu.ID] = &stu
	st.classStudents[classID] = append(st.classStudents[classID], stu.ID)
}

func (st *State) replaceStudent(classID string, stu Student) {
	st.students[classID][stu.ID] = &stu
}

// removeStudent drops the student from the roster and from every date of the class.
func (st *State) removeStudent(classID, studentID string) {
	ids := st.classStudents[classID]
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != studentID {
			kept = append(kept, id)
		}
	}
	st.classStudents[classID] = kept
	delete(st.students[classID], studentID)

	for _, byStudent := range st.records[classID] {
		delete(byStudent, studentID)
	}
}

func (st *State) setRecord(classID, date, studentID string, rec Record) {
	byDate, ok := st.records[classID]
	if !ok {
		byDate = make(map[string]map[string]Record)
		st.records[classID] = byDate
	}
	byStudent, ok := byDate[date]
	if !ok {
		byStudent = make(map[string]Record)
		byDate[date] = byStudent
	}
	byStudent[studentID] = rec
}

func (st *State) clearDay(classID, date string) bool {
	byDate, ok := st.records[classID]
	if !ok {
		return false
	}
	if _, ok := byDate[date]; !ok {
		return false
	}
	delete(byDate, date)
	return true
}

// DecodeDocument parses a persisted slot. Empty data yields EmptyDocument.
func DecodeDocument(data []byte) (Document, error) {
	doc := EmptyDocument()
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return EmptyDocument(), err
	}
	return doc, nil
}

// EncodeDocument serializes doc for a slot.
func EncodeDocument(doc Document) ([]byte, error) {
	return json.Marshal(doc)
}
