package register

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{
  "teachers": {
    "doc_1": {"id": "doc_1", "name": "Ana", "password": "pw1", "classes": {
      "clase_1": {"id": "clase_1", "career": "Sistemas", "subject": "BD", "section": "A"}
    }}
  },
  "currentTeacherId": "doc_1",
  "currentClassId": "clase_1",
  "academicTerm": "1/2024",
  "period": "Primer Parcial",
  "studentsByClass": {
    "clase_1": [
      {"id": "st_2", "registrationNumber": "002", "nationalId": "456", "name": "Eva", "email": ""},
      {"id": "st_1", "registrationNumber": "001", "nationalId": "123", "name": "Luis", "email": "l@u.edu"},
      {"id": "st_2", "registrationNumber": "002", "nationalId": "456", "name": "Eva again", "email": ""}
    ]
  },
  "recordsByClass": {
    "clase_1": {
      "2024-03-02": {"st_1": {"status": "ausente", "time": ""}},
      "2024-03-01": {"st_1": {"status": "presente", "time": "08:00:00"}, "st_2": {"status": "presente", "time": "08:00:00"}}
    }
  }
}`

func TestRestore(t *testing.T) {
	doc, err := DecodeDocument([]byte(sampleDoc))
	require.NoError(t, err)
	st := Restore(doc)

	cur, ok := st.CurrentTeacher()
	require.True(t, ok)
	assert.Equal(t, Teacher{ID: "doc_1", Name: "Ana", Password: "pw1"}, cur)

	cls, ok := st.CurrentClass()
	require.True(t, ok)
	assert.Equal(t, "Sistemas - BD (A)", cls.Label())

	roster := st.Roster("clase_1")
	require.Len(t, roster, 2, "duplicate ids keep the first entry")
	assert.Equal(t, "Eva", roster[0].Name, "roster order is kept")
	assert.Equal(t, "Luis", roster[1].Name)

	assert.Equal(t, []string{"2024-03-01", "2024-03-02"}, st.Dates("clase_1"))
	assert.Equal(t, Term{AcademicTerm: "1/2024", Period: "Primer Parcial"}, st.Term())
	assert.Empty(t, st.Dates("clase_nope"))
	assert.Empty(t, st.Roster("clase_nope"))

	// the copy handed out does not alias the state
	recs := st.Attendance("clase_1", "2024-03-01")
	delete(recs, "st_1")
	assert.Len(t, st.Attendance("clase_1", "2024-03-01"), 2)
}

func TestState_DocumentRoundTrip(t *testing.T) {
	doc, err := DecodeDocument([]byte(sampleDoc))
	require.NoError(t, err)
	st := Restore(doc)

	data, err := EncodeDocument(st.Document())
	require.NoError(t, err)
	again, err := DecodeDocument(data)
	require.NoError(t, err)

	assert.Equal(t, st.Document(), Restore(again).Document())
	assert.Len(t, again.StudentsByClass["clase_1"], 2)
	assert.Equal(t, "doc_1", again.Teachers["doc_1"].ID)
}

func TestDecodeDocument(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{name: "nil", data: ""},
		{name: "blank", data: "  \n"},
		{name: "empty object", data: "{}"},
		{name: "corrupt", data: "{teachers", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := DecodeDocument([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeDocument() error = %v, wantErr %v", err, tt.wantErr)
			}
			assert.NotNil(t, doc.Teachers)
			assert.NotNil(t, doc.StudentsByClass)
			assert.NotNil(t, doc.RecordsByClass)
		})
	}
}

func TestState_staleCurrentIDs(t *testing.T) {
	st := Restore(Document{CurrentTeacherID: "doc_gone", CurrentClassID: "clase_gone"})
	_, ok := st.CurrentTeacher()
	assert.False(t, ok)
	_, ok = st.CurrentClass()
	assert.False(t, ok)
	assert.Empty(t, st.Teachers())
}
