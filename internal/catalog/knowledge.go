package catalog

import (
	"encoding/json"
	"os"

	domerrors "github.com/margdarshak/margdarshak-go/internal/errors"
)

// CannedReply is one short-circuit table entry. Entries are matched by
// substring containment against the lowercased query, in declaration
// order, so the table is a list rather than a map.
type CannedReply struct {
	Keyword string `json:"keyword"`
	Reply   string `json:"reply"`
}

// TopCollege is a curated national college entry in the knowledge base.
// Unlike harvested records these are complete by construction.
type TopCollege struct {
	Name             string `json:"name"`
	Location         string `json:"location"`
	Ranking          string `json:"ranking"`
	AdmissionProcess string `json:"admission_process"`
	Fees             string `json:"fees"`
	Website          string `json:"website"`
}

// CollegeGroup holds the curated colleges for one field of study.
type CollegeGroup struct {
	Field    string       `json:"field"`
	Colleges []TopCollege `json:"colleges"`
}

// Exam is one entrance exam entry.
type Exam struct {
	Name              string `json:"name"`
	FullName          string `json:"full_name"`
	ConductingBody    string `json:"conducting_body"`
	Eligibility       string `json:"eligibility"`
	ApplicationPeriod string `json:"application_period"`
	ExamDates         string `json:"exam_dates"`
	Colleges          string `json:"colleges"`
	Website           string `json:"website"`
}

// ExamGroup holds the exams for one field of study.
type ExamGroup struct {
	Field string `json:"field"`
	Exams []Exam `json:"exams"`
}

// Scholarship is one scholarship entry.
type Scholarship struct {
	Name              string `json:"name"`
	Provider          string `json:"provider"`
	Eligibility       string `json:"eligibility"`
	Amount            string `json:"amount"`
	ApplicationPeriod string `json:"application_period"`
	Website           string `json:"website"`
}

// CalendarEntry is one admission timeline event.
type CalendarEntry struct {
	Event    string `json:"event"`
	Timeline string `json:"timeline"`
}

// FieldCalendar holds the admission timeline for one field of study.
type FieldCalendar struct {
	Field  string          `json:"field"`
	Events []CalendarEntry `json:"events"`
}

// KnowledgeBase is the curated, static data the chat modules answer from.
// It is loaded once at startup; a load failure is fatal for the process.
type KnowledgeBase struct {
	Greetings         []CannedReply   `json:"greetings"`
	General           []CannedReply   `json:"general"`
	TopColleges       []CollegeGroup  `json:"top_colleges"`
	EntranceExams     []ExamGroup     `json:"entrance_exams"`
	Scholarships      []Scholarship   `json:"scholarships"`
	AdmissionCalendar []FieldCalendar `json:"admission_calendar"`
}

// LoadKnowledgeBase reads and decodes the knowledge base file.
func LoadKnowledgeBase(path string) (*KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domerrors.NewDataLoadError(path, err)
	}

	var kb KnowledgeBase
	if err := json.Unmarshal(data, &kb); err != nil {
		return nil, domerrors.NewDataLoadError(path, err)
	}
	return &kb, nil
}

// CollegesForField returns the curated colleges for a field, or nil when
// the field is unknown.
func (kb *KnowledgeBase) CollegesForField(field string) []TopCollege {
	for _, g := range kb.TopColleges {
		if g.Field == field {
			return g.Colleges
		}
	}
	return nil
}

// ExamsForField returns the exams for a field, or nil when unknown.
func (kb *KnowledgeBase) ExamsForField(field string) []Exam {
	for _, g := range kb.EntranceExams {
		if g.Field == field {
			return g.Exams
		}
	}
	return nil
}

// CalendarForField returns the admission timeline for a field, or nil.
func (kb *KnowledgeBase) CalendarForField(field string) []CalendarEntry {
	for _, c := range kb.AdmissionCalendar {
		if c.Field == field {
			return c.Events
		}
	}
	return nil
}
