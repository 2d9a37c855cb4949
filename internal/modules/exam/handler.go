// Package exam answers entrance exam queries from the curated knowledge
// base, scoped to a field of study when the query names one.
package exam

import (
	"context"
	"fmt"
	"strings"

	"github.com/margdarshak/margdarshak-go/internal/catalog"
	"github.com/margdarshak/margdarshak-go/internal/chat"
	"github.com/margdarshak/margdarshak-go/internal/logger"
)

const moduleName = "exam"

// Field keyword groups. Exam names double as field indicators here, so
// these differ from the college module's groups.
var (
	engineeringKeywords = []string{"engineering", "jee", "bitsat"}
	medicalKeywords     = []string{"medical", "neet", "aiims"}
	managementKeywords  = []string{"management", "cat", "xat", "mba"}
)

// Handler handles entrance exam queries
type Handler struct {
	kb  *catalog.KnowledgeBase
	log *logger.Logger
}

// NewHandler creates a new exam handler.
func NewHandler(kb *catalog.KnowledgeBase, log *logger.Logger) *Handler {
	return &Handler{
		kb:  kb,
		log: log.WithModule(moduleName),
	}
}

// Name returns the module name.
func (h *Handler) Name() string { return moduleName }

// Handle builds the response for an exam query. Without a field keyword
// it lists the exams of every field in declaration order.
func (h *Handler) Handle(_ context.Context, query, greeting string) string {
	var exams []catalog.Exam
	var field string

	switch {
	case chat.ContainsAny(query, engineeringKeywords):
		exams = h.kb.ExamsForField("engineering")
		field = "engineering"
	case chat.ContainsAny(query, medicalKeywords):
		exams = h.kb.ExamsForField("medical")
		field = "medical"
	case chat.ContainsAny(query, managementKeywords):
		exams = h.kb.ExamsForField("management")
		field = "management"
	default:
		for _, group := range h.kb.EntranceExams {
			exams = append(exams, group.Exams...)
		}
		field = "various fields"
	}

	var sb strings.Builder
	sb.WriteString(greeting)
	sb.WriteString("Here's information about entrance exams in India related to your query:\n\n")
	fmt.Fprintf(&sb, "Important entrance exams for %s in India:\n\n", field)

	for i, exam := range exams {
		fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, exam.Name, exam.FullName)
		fmt.Fprintf(&sb, "   • Conducted by: %s\n", exam.ConductingBody)
		fmt.Fprintf(&sb, "   • Eligibility: %s\n", exam.Eligibility)
		fmt.Fprintf(&sb, "   • Application period: %s\n", exam.ApplicationPeriod)
		fmt.Fprintf(&sb, "   • Exam dates: %s\n", exam.ExamDates)
		fmt.Fprintf(&sb, "   • Colleges accepting: %s\n", exam.Colleges)
		fmt.Fprintf(&sb, "   • Website: %s\n\n", exam.Website)
	}

	sb.WriteString("Do you need more specific details about any of these exams or preparation tips?")

	return sb.String()
}
