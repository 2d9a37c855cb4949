// Package college answers college and university queries. Queries that
// name Maharashtra or one of its cities and have a harvested regional
// catalog available go through the regional filter pipeline; everything
// else is answered from the curated national knowledge base.
package college

import (
	"context"
	"fmt"
	"strings"

	"github.com/margdarshak/margdarshak-go/internal/catalog"
	"github.com/margdarshak/margdarshak-go/internal/chat"
	"github.com/margdarshak/margdarshak-go/internal/logger"
)

const moduleName = "college"

// Field keyword groups for the national flow. The regional pipeline uses
// its own course-name sets in regional.go.
var (
	engineeringKeywords = []string{"engineering", "tech", "b.tech", "m.tech"}
	medicalKeywords     = []string{"medical", "mbbs", "doctor", "medicine"}
	managementKeywords  = []string{"management", "mba", "business", "pgdm"}
	artsKeywords        = []string{"arts", "science", "ba", "bsc", "ma", "msc"}

	regionalKeywords = []string{"maharashtra", "mumbai", "pune", "nagpur", "aurangabad"}
)

// Handler handles college and university queries
type Handler struct {
	kb       *catalog.KnowledgeBase
	regional *catalog.Catalog
	log      *logger.Logger
}

// NewHandler creates a new college handler. regional may be empty when
// the harvested catalog failed to load; the handler then degrades to the
// national flow.
func NewHandler(kb *catalog.KnowledgeBase, regional *catalog.Catalog, log *logger.Logger) *Handler {
	return &Handler{
		kb:       kb,
		regional: regional,
		log:      log.WithModule(moduleName),
	}
}

// Name returns the module name.
func (h *Handler) Name() string { return moduleName }

// Handle builds the response for a college query.
func (h *Handler) Handle(_ context.Context, query, greeting string) string {
	if chat.ContainsAny(query, regionalKeywords) && h.regional.Len() > 0 {
		return h.handleRegional(query, greeting)
	}
	return h.handleNational(query, greeting)
}

// handleNational answers from the curated per-field top college lists.
// Without a field keyword it combines the top 2 from every field.
func (h *Handler) handleNational(query, greeting string) string {
	var colleges []catalog.TopCollege
	var field string

	switch {
	case chat.ContainsAny(query, engineeringKeywords):
		colleges = h.kb.CollegesForField("engineering")
		field = "engineering"
	case chat.ContainsAny(query, medicalKeywords):
		colleges = h.kb.CollegesForField("medical")
		field = "medical"
	case chat.ContainsAny(query, managementKeywords):
		colleges = h.kb.CollegesForField("management")
		field = "management"
	case chat.ContainsAny(query, artsKeywords):
		colleges = h.kb.CollegesForField("arts_and_science")
		field = "arts and science"
	default:
		for _, group := range h.kb.TopColleges {
			top := group.Colleges
			if len(top) > 2 {
				top = top[:2]
			}
			colleges = append(colleges, top...)
		}
		field = "various fields"
	}

	var sb strings.Builder
	sb.WriteString(greeting)
	sb.WriteString("Here's what I found about Indian colleges and universities related to your query:\n\n")
	fmt.Fprintf(&sb, "Top colleges for %s in India:\n\n", field)

	if len(colleges) > 5 {
		colleges = colleges[:5]
	}
	for i, college := range colleges {
		fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, college.Name, college.Location)
		fmt.Fprintf(&sb, "   • Ranking: %s\n", college.Ranking)
		fmt.Fprintf(&sb, "   • Admission: %s\n", college.AdmissionProcess)
		fmt.Fprintf(&sb, "   • Fees: %s\n", college.Fees)
		fmt.Fprintf(&sb, "   • Website: %s\n\n", college.Website)
	}

	sb.WriteString("Would you like more specific information about any of these colleges or a different field?")

	return sb.String()
}
