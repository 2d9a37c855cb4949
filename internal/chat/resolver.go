package chat

import (
	"context"
	"strings"
	"time"

	"github.com/margdarshak/margdarshak-go/internal/catalog"
	domerrors "github.com/margdarshak/margdarshak-go/internal/errors"
	"github.com/margdarshak/margdarshak-go/internal/logger"
	"github.com/margdarshak/margdarshak-go/internal/metrics"
)

// Apology is returned when no category matches and external search is
// unavailable or fails.
const Apology = "I don't have specific information about that query. Please ask about Indian colleges, entrance exams, scholarships, or admission processes for more detailed information."

// Searcher answers a general query with external search results. Respond
// returns a formatted response block, or an error when the search failed
// or produced nothing usable.
type Searcher interface {
	Respond(ctx context.Context, query, greeting string) (string, error)
}

// Translator converts text between languages best effort. Implementations
// return the input unchanged on any failure.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) string
}

// Resolver orchestrates a chat request: short-circuit tables, inbound
// translation, classification via the handler registry, the external
// search fallback, outbound translation, and the conversation log.
type Resolver struct {
	kb        *catalog.KnowledgeBase
	registry  *Registry
	history   *History
	search    Searcher   // nil when search is not configured
	translate Translator // nil disables translation
	metrics   *metrics.Metrics
	log       *logger.Logger

	searchTimeout    time.Duration
	translateTimeout time.Duration

	now func() time.Time
}

// ResolverOptions configures a Resolver.
type ResolverOptions struct {
	KnowledgeBase    *catalog.KnowledgeBase
	Registry         *Registry
	History          *History
	Search           Searcher
	Translate        Translator
	Metrics          *metrics.Metrics
	Logger           *logger.Logger
	SearchTimeout    time.Duration
	TranslateTimeout time.Duration
}

// NewResolver creates a resolver.
func NewResolver(opts ResolverOptions) *Resolver {
	return &Resolver{
		kb:               opts.KnowledgeBase,
		registry:         opts.Registry,
		history:          opts.History,
		search:           opts.Search,
		translate:        opts.Translate,
		metrics:          opts.Metrics,
		log:              opts.Logger.WithModule("resolver"),
		searchTimeout:    opts.SearchTimeout,
		translateTimeout: opts.TranslateTimeout,
		now:              time.Now,
	}
}

// Resolve answers one chat message. session partitions the conversation
// log; lang is the caller's language code ("en" skips translation).
// Collaborator failures never propagate: translation falls back to the
// untranslated text and search to the apology response.
func (r *Resolver) Resolve(ctx context.Context, session, message, lang string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", domerrors.NewValidationError("message", "must be a non-empty string")
	}
	if lang == "" || lang == "auto" {
		lang = "en"
	}

	start := r.now()
	r.history.Append(session, "user", message)

	response, intent := r.respond(ctx, message, lang)

	if lang != "en" {
		response = r.translateText(ctx, response, "en", lang)
	}
	r.history.Append(session, "assistant", response)

	r.metrics.RecordChatRequest(intent, "success", time.Since(start).Seconds())
	r.log.WithField("intent", intent).Debugf("resolved query in %s", time.Since(start))

	return response, nil
}

// respond produces the English response and the intent label used for
// metrics.
func (r *Resolver) respond(ctx context.Context, message, lang string) (string, string) {
	// Short-circuit tables match the raw message before any translation,
	// greetings first, then general, in declaration order.
	if canned, ok := r.shortCircuit(message); ok {
		return canned, "canned"
	}

	query := message
	if lang != "en" {
		query = r.translateText(ctx, message, lang, "en")
	}

	greeting := TimeGreeting(r.now())

	if response, name, ok := r.registry.Dispatch(ctx, query, greeting); ok {
		return response, name
	}

	return r.generalFallback(ctx, query, greeting), string(IntentGeneral)
}

// shortCircuit checks the canned reply tables, first match wins.
func (r *Resolver) shortCircuit(message string) (string, bool) {
	lowered := strings.ToLower(message)
	for _, table := range [][]catalog.CannedReply{r.kb.Greetings, r.kb.General} {
		for _, entry := range table {
			if strings.Contains(lowered, entry.Keyword) {
				return entry.Reply, true
			}
		}
	}
	return "", false
}

// generalFallback tries external search and degrades to the apology.
func (r *Resolver) generalFallback(ctx context.Context, query, greeting string) string {
	if r.search == nil {
		return greeting + Apology
	}

	searchCtx, cancel := context.WithTimeout(ctx, r.searchTimeout)
	defer cancel()

	start := time.Now()
	response, err := r.search.Respond(searchCtx, query, greeting)
	if err != nil {
		r.metrics.RecordCollaboratorRequest("search", "error", time.Since(start).Seconds())
		r.log.WithError(err).Warn("external search failed, using apology fallback")
		return greeting + Apology
	}

	r.metrics.RecordCollaboratorRequest("search", "success", time.Since(start).Seconds())
	return response
}

// translateText invokes the translation collaborator with a bounded
// timeout. Failures return the input unchanged inside the client.
func (r *Resolver) translateText(ctx context.Context, text, source, target string) string {
	if r.translate == nil {
		return text
	}

	translateCtx, cancel := context.WithTimeout(ctx, r.translateTimeout)
	defer cancel()

	start := time.Now()
	translated := r.translate.Translate(translateCtx, text, source, target)

	status := "success"
	if translated == text {
		status = "passthrough"
	}
	r.metrics.RecordCollaboratorRequest("translate", status, time.Since(start).Seconds())

	return translated
}
