package chat

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Intent
	}{
		{"College keyword", "top colleges in india", IntentCollege},
		{"University keyword", "best university for physics", IntentCollege},
		{"Exam keyword", "when is the jee main", IntentExam},
		{"Scholarship keyword", "scholarship for undergraduates", IntentScholarship},
		{"Multi-word scholarship keyword", "need financial aid options", IntentScholarship},
		{"Admission keyword", "application deadline this year", IntentAdmission},
		{"No keyword", "tell me about careers", IntentGeneral},
		{"Uppercase query", "TOP IIT RANKINGS", IntentCollege},
		{"Empty query", "", IntentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.query); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

// A query matching both a college and an exam keyword resolves to
// college, the earlier category in the priority order.
func TestClassifyPriorityOrder(t *testing.T) {
	tests := []string{
		"best engineering college for jee",
		"which university accepts neet",
		"iit entrance cutoff",
	}

	for _, query := range tests {
		if got := Classify(query); got != IntentCollege {
			t.Errorf("Classify(%q) = %q, want college", query, got)
		}
	}
}

func TestClassifyExamBeatsAdmission(t *testing.T) {
	if got := Classify("neet application form"); got != IntentExam {
		t.Errorf("Classify() = %q, want exam", got)
	}
}

func TestContainsAny(t *testing.T) {
	if !ContainsAny("Tell me about IIT Bombay", CollegeKeywords) {
		t.Error("expected case-insensitive match")
	}
	if ContainsAny("hello there", ExamKeywords) {
		t.Error("unexpected match")
	}
}
