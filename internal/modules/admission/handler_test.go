package admission

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/margdarshak/margdarshak-go/internal/catalog"
	"github.com/margdarshak/margdarshak-go/internal/logger"
)

func testHandler() *Handler {
	kb := &catalog.KnowledgeBase{
		AdmissionCalendar: []catalog.FieldCalendar{
			{
				Field: "engineering",
				Events: []catalog.CalendarEntry{
					{Event: "JEE Main Session 1", Timeline: "January"},
					{Event: "Counselling", Timeline: "June-July"},
				},
			},
			{
				Field: "medical",
				Events: []catalog.CalendarEntry{
					{Event: "NEET UG", Timeline: "May"},
				},
			},
		},
	}
	return NewHandler(kb, logger.NewWithWriter("error", io.Discard))
}

func TestHandleFieldScoped(t *testing.T) {
	h := testHandler()

	got := h.Handle(context.Background(), "engineering admission timeline", "Good morning! ")

	if !strings.Contains(got, "Admission timeline for engineering courses in India") {
		t.Errorf("missing header: %q", got)
	}
	if !strings.Contains(got, "• JEE Main Session 1: January") {
		t.Errorf("missing event: %q", got)
	}
	if strings.Contains(got, "NEET") {
		t.Errorf("medical calendar leaked: %q", got)
	}
}

func TestHandleGeneralDump(t *testing.T) {
	h := testHandler()

	got := h.Handle(context.Background(), "admission deadlines", "Good morning! ")

	if !strings.Contains(got, "General admission timeline for various fields") {
		t.Errorf("missing general header: %q", got)
	}
	// Calendar order and capitalized field names
	engineering := strings.Index(got, "For Engineering courses:")
	medical := strings.Index(got, "For Medical courses:")
	if engineering == -1 || medical == -1 {
		t.Fatalf("missing field sections: %q", got)
	}
	if engineering > medical {
		t.Error("fields should render in declaration order")
	}
	if !strings.HasSuffix(got, "Would you like more specific information about admission processes for a particular field or college?") {
		t.Errorf("missing follow-up question: %q", got)
	}
}
