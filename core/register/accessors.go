package register

import (
	"sort"
	"strings"
)

// CurrentTeacher returns the logged in Teacher; false when nobody is logged in or the id is stale.
func (st *State) CurrentTeacher() (Teacher, bool) {
	return st.Teacher(st.currentTeacherID)
}

// CurrentClass returns the active Class, only if it belongs to the current Teacher.
func (st *State) CurrentClass() (Class, bool) {
	if st.currentClassID == "" || st.classOwner[st.currentClassID] != st.currentTeacherID {
		return Class{}, false
	}
	return st.Class(st.currentClassID)
}

func (st *State) Teacher(id string) (Teacher, bool) {
	if t, ok := st.teachers[id]; ok {
		return *t, true
	}
	return Teacher{}, false
}

// Teachers returns every registered Teacher sorted by name.
func (st *State) Teachers() []Teacher {
	teachers := make([]Teacher, 0, len(st.teachers))
	for _, t := range st.teachers {
		teachers = append(teachers, *t)
	}
	sort.Slice(teachers, func(i, j int) bool {
		return strings.ToLower(teachers[i].Name) < strings.ToLower(teachers[j].Name)
	})
	return teachers
}

func (st *State) teacherByName(name string) (Teacher, bool) {
	for _, t := range st.teachers {
		if strings.EqualFold(t.Name, name) {
			return *t, true
		}
	}
	return Teacher{}, false
}

func (st *State) Class(id string) (Class, bool) {
	if cls, ok := st.classes[id]; ok {
		return *cls, true
	}
	return Class{}, false
}

// Classes returns the classes of a Teacher sorted by label.
func (st *State) Classes(teacherID string) []Class {
	ids := st.teacherClasses[teacherID]
	classes := make([]Class, 0, len(ids))
	for _, id := range ids {
		classes = append(classes, *st.classes[id])
	}
	sort.SliceStable(classes, func(i, j int) bool { return classes[i].Label() < classes[j].Label() })
	return classes
}

// Roster returns the students of a class in roster order; empty if none.
func (st *State) Roster(classID string) []Student {
	ids := st.classStudents[classID]
	roster := make([]Student, 0, len(ids))
	for _, id := range ids {
		roster = append(roster, *st.students[classID][id])
	}
	return roster
}

func (st *State) Student(classID, id string) (Student, bool) {
	if stu, ok := st.students[classID][id]; ok {
		return *stu, true
	}
	return Student{}, false
}

// Attendance returns a copy of the records of a class on a date, keyed by student id.
func (st *State) Attendance(classID, date string) map[string]Record {
	byStudent := st.records[classID][date]
	recs := make(map[string]Record, len(byStudent))
	for sid, rec := range byStudent {
		recs[sid] = rec
	}
	return recs
}

// Dates returns every date with a record bucket for the class, oldest first.
// Dates are YYYY-MM-DD so lexical order is chronological.
func (st *State) Dates(classID string) []string {
	byDate := st.records[classID]
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

func (st *State) Term() Term {
	return Term{AcademicTerm: st.academicTerm, Period: st.period}
}
