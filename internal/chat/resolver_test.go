package chat

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/margdarshak/margdarshak-go/internal/catalog"
	domerrors "github.com/margdarshak/margdarshak-go/internal/errors"
	"github.com/margdarshak/margdarshak-go/internal/logger"
	"github.com/margdarshak/margdarshak-go/internal/metrics"
)

type stubHandler struct {
	name     string
	response string
}

func (h *stubHandler) Name() string { return h.name }

func (h *stubHandler) Handle(_ context.Context, _, greeting string) string {
	return greeting + h.response
}

type stubSearcher struct {
	response string
	err      error
	calls    int
}

func (s *stubSearcher) Respond(_ context.Context, _, greeting string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return greeting + s.response, nil
}

type stubTranslator struct {
	prefix string
}

func (t *stubTranslator) Translate(_ context.Context, text, _, _ string) string {
	return t.prefix + text
}

func testKnowledgeBase() *catalog.KnowledgeBase {
	return &catalog.KnowledgeBase{
		Greetings: []catalog.CannedReply{
			{Keyword: "hello", Reply: "Hello! How can I help you with Indian education today?"},
			{Keyword: "hi", Reply: "Hi there!"},
		},
		General: []catalog.CannedReply{
			{Keyword: "thank", Reply: "You're welcome!"},
		},
	}
}

func testResolver(t *testing.T, search Searcher, translate Translator) *Resolver {
	t.Helper()

	registry := NewRegistry()
	registry.Register(&stubHandler{name: "college", response: "college answer"})
	registry.Register(&stubHandler{name: "exam", response: "exam answer"})

	return NewResolver(ResolverOptions{
		KnowledgeBase:    testKnowledgeBase(),
		Registry:         registry,
		History:          NewHistory(10),
		Search:           search,
		Translate:        translate,
		Metrics:          metrics.New(prometheus.NewRegistry()),
		Logger:           logger.NewWithWriter("error", io.Discard),
		SearchTimeout:    time.Second,
		TranslateTimeout: time.Second,
	})
}

func TestResolveRejectsEmptyMessage(t *testing.T) {
	r := testResolver(t, nil, nil)

	_, err := r.Resolve(context.Background(), "s1", "   ", "en")
	var verr *domerrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestResolveShortCircuit(t *testing.T) {
	search := &stubSearcher{}
	r := testResolver(t, search, nil)

	// "hello college" contains both a canned keyword and a category
	// keyword; the canned table wins and skips classification entirely.
	got, err := r.Resolve(context.Background(), "s1", "Hello college", "en")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hello! How can I help you with Indian education today?" {
		t.Errorf("got %q", got)
	}
	if search.calls != 0 {
		t.Error("search should not run for canned replies")
	}
}

func TestResolveShortCircuitDeclarationOrder(t *testing.T) {
	r := testResolver(t, nil, nil)

	// "hi" is a substring of "hello" queries too, but "hello" is declared
	// first and must win.
	got, err := r.Resolve(context.Background(), "s1", "hello", "en")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hello! How can I help you with Indian education today?" {
		t.Errorf("got %q", got)
	}
}

func TestResolveDispatchesToHandler(t *testing.T) {
	r := testResolver(t, nil, nil)

	got, err := r.Resolve(context.Background(), "s1", "best college for me", "en")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(got, "college answer") {
		t.Errorf("got %q", got)
	}
	if !strings.HasPrefix(got, "Good ") {
		t.Errorf("expected time-of-day greeting prefix, got %q", got)
	}
}

func TestResolveSearchFallback(t *testing.T) {
	search := &stubSearcher{response: "search results"}
	r := testResolver(t, search, nil)

	got, err := r.Resolve(context.Background(), "s1", "what about careers", "en")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(got, "search results") {
		t.Errorf("got %q", got)
	}
	if search.calls != 1 {
		t.Errorf("search calls = %d, want 1", search.calls)
	}
}

func TestResolveApologyNamesCategories(t *testing.T) {
	tests := []struct {
		name   string
		search Searcher
	}{
		{"Search unavailable", nil},
		{"Search fails", &stubSearcher{err: errors.New("boom")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testResolver(t, tt.search, nil)

			got, err := r.Resolve(context.Background(), "s1", "what about careers", "en")
			if err != nil {
				t.Fatal(err)
			}

			for _, category := range []string{"colleges", "entrance exams", "scholarships", "admission"} {
				if !strings.Contains(got, category) {
					t.Errorf("apology missing %q: %q", category, got)
				}
			}
		})
	}
}

func TestResolveTranslatesResponse(t *testing.T) {
	r := testResolver(t, nil, &stubTranslator{prefix: "[hi] "})

	got, err := r.Resolve(context.Background(), "s1", "best college for me", "hi")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "[hi] ") {
		t.Errorf("expected translated response, got %q", got)
	}
}

func TestResolveAppendsHistory(t *testing.T) {
	r := testResolver(t, nil, nil)

	if _, err := r.Resolve(context.Background(), "s1", "hello", "en"); err != nil {
		t.Fatal(err)
	}

	turns := r.history.Recent("s1")
	if len(turns) != 2 {
		t.Fatalf("len = %d, want 2 (user + assistant)", len(turns))
	}
	if turns[0].Role != "user" || turns[1].Role != "assistant" {
		t.Errorf("roles = %q, %q", turns[0].Role, turns[1].Role)
	}
}
