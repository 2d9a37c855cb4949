package chat

import "strings"

// Intent is the coarse query category selected by classification.
type Intent string

// The supported intents, in classification priority order. A query
// matching keywords from two categories resolves to the earlier one.
const (
	IntentCollege     Intent = "college"
	IntentExam        Intent = "exam"
	IntentScholarship Intent = "scholarship"
	IntentAdmission   Intent = "admission"
	IntentGeneral     Intent = "general"
)

// Per-category keyword sets. Matching is plain substring containment
// against the lowercased query, no tokenization.
var (
	CollegeKeywords     = []string{"college", "university", "institute", "iit", "nit", "aiims", "iim"}
	ExamKeywords        = []string{"exam", "entrance", "jee", "neet", "cat", "xat", "bitsat"}
	ScholarshipKeywords = []string{"scholarship", "financial aid", "funding", "stipend"}
	AdmissionKeywords   = []string{"admission", "apply", "application", "form", "deadline", "cutoff"}
)

// ContainsAny reports whether any keyword is a substring of the
// lowercased query.
func ContainsAny(query string, keywords []string) bool {
	lowered := strings.ToLower(query)
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// Classify maps a query to exactly one intent by testing the category
// keyword sets in fixed priority order.
func Classify(query string) Intent {
	switch {
	case ContainsAny(query, CollegeKeywords):
		return IntentCollege
	case ContainsAny(query, ExamKeywords):
		return IntentExam
	case ContainsAny(query, ScholarshipKeywords):
		return IntentScholarship
	case ContainsAny(query, AdmissionKeywords):
		return IntentAdmission
	default:
		return IntentGeneral
	}
}
