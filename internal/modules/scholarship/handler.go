// Package scholarship answers scholarship queries from the curated
// knowledge base. The scholarship list is not field-scoped.
package scholarship

import (
	"context"
	"fmt"
	"strings"

	"github.com/margdarshak/margdarshak-go/internal/catalog"
	"github.com/margdarshak/margdarshak-go/internal/logger"
)

const moduleName = "scholarship"

// Handler handles scholarship queries
type Handler struct {
	kb  *catalog.KnowledgeBase
	log *logger.Logger
}

// NewHandler creates a new scholarship handler.
func NewHandler(kb *catalog.KnowledgeBase, log *logger.Logger) *Handler {
	return &Handler{
		kb:  kb,
		log: log.WithModule(moduleName),
	}
}

// Name returns the module name.
func (h *Handler) Name() string { return moduleName }

// Handle builds the response for a scholarship query.
func (h *Handler) Handle(_ context.Context, _, greeting string) string {
	var sb strings.Builder
	sb.WriteString(greeting)
	sb.WriteString("Here's information about scholarships available for Indian students:\n\n")

	for i, s := range h.kb.Scholarships {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, s.Name)
		fmt.Fprintf(&sb, "   • Provider: %s\n", s.Provider)
		fmt.Fprintf(&sb, "   • Eligibility: %s\n", s.Eligibility)
		fmt.Fprintf(&sb, "   • Amount: %s\n", s.Amount)
		fmt.Fprintf(&sb, "   • Application period: %s\n", s.ApplicationPeriod)
		fmt.Fprintf(&sb, "   • Website: %s\n\n", s.Website)
	}

	sb.WriteString("Would you like information about any specific scholarship or eligibility criteria?")

	return sb.String()
}
