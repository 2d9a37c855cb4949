// Package admission answers admission process and timeline queries from
// the curated admission calendar, scoped to a field of study when the
// query names one and dumping every field's calendar otherwise.
package admission

import (
	"context"
	"fmt"
	"strings"

	"github.com/margdarshak/margdarshak-go/internal/catalog"
	"github.com/margdarshak/margdarshak-go/internal/chat"
	"github.com/margdarshak/margdarshak-go/internal/logger"
)

const moduleName = "admission"

var (
	engineeringKeywords = []string{"engineering", "tech", "b.tech", "m.tech"}
	medicalKeywords     = []string{"medical", "mbbs", "doctor", "medicine"}
	managementKeywords  = []string{"management", "mba", "business", "pgdm"}
)

// Handler handles admission process queries
type Handler struct {
	kb  *catalog.KnowledgeBase
	log *logger.Logger
}

// NewHandler creates a new admission handler.
func NewHandler(kb *catalog.KnowledgeBase, log *logger.Logger) *Handler {
	return &Handler{
		kb:  kb,
		log: log.WithModule(moduleName),
	}
}

// Name returns the module name.
func (h *Handler) Name() string { return moduleName }

// Handle builds the response for an admission query.
func (h *Handler) Handle(_ context.Context, query, greeting string) string {
	var sb strings.Builder
	sb.WriteString(greeting)
	sb.WriteString("Here's information about admission processes and timelines in India:\n\n")

	var events []catalog.CalendarEntry
	var field string

	switch {
	case chat.ContainsAny(query, engineeringKeywords):
		events = h.kb.CalendarForField("engineering")
		field = "engineering"
	case chat.ContainsAny(query, medicalKeywords):
		events = h.kb.CalendarForField("medical")
		field = "medical"
	case chat.ContainsAny(query, managementKeywords):
		events = h.kb.CalendarForField("management")
		field = "management"
	default:
		sb.WriteString("General admission timeline for various fields:\n\n")
		for _, calendar := range h.kb.AdmissionCalendar {
			fmt.Fprintf(&sb, "For %s courses:\n", capitalize(calendar.Field))
			for _, event := range calendar.Events {
				fmt.Fprintf(&sb, "   • %s: %s\n", event.Event, event.Timeline)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("Would you like more specific information about admission processes for a particular field or college?")
		return sb.String()
	}

	fmt.Fprintf(&sb, "Admission timeline for %s courses in India:\n\n", field)
	for _, event := range events {
		fmt.Fprintf(&sb, "• %s: %s\n", event.Event, event.Timeline)
	}

	sb.WriteString("\nWould you like more specific information about admission processes for a particular college?")

	return sb.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
