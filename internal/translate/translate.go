// Package translate provides the best-effort translation collaborator.
// Every failure path returns the input text unchanged; the chat flow
// must never break because translation is down.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/margdarshak/margdarshak-go/internal/logger"
)

const defaultBaseURL = "https://translate.googleapis.com/translate_a/single"

// Languages maps supported language codes to display names, served at
// /api/languages.
var Languages = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"ta": "Tamil",
	"te": "Telugu",
	"bn": "Bengali",
	"mr": "Marathi",
	"gu": "Gujarati",
	"kn": "Kannada",
	"ml": "Malayalam",
	"pa": "Punjabi",
}

// Supported reports whether the language code is in the language table.
func Supported(code string) bool {
	_, ok := Languages[code]
	return ok
}

// Client calls the public Google translate endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *logger.Logger
}

// NewClient creates a translate client.
func NewClient(timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		log:        log.WithModule("translate"),
	}
}

// Translate converts text from source to target language. On any failure
// it logs and returns the input unchanged.
func (c *Client) Translate(ctx context.Context, text, source, target string) string {
	if text == "" || source == target {
		return text
	}
	if !Supported(source) || !Supported(target) {
		return text
	}

	translated, err := c.request(ctx, text, source, target)
	if err != nil {
		c.log.WithError(err).Warnf("translation %s->%s failed, returning original text", source, target)
		return text
	}
	return translated
}

// request performs the API call. The endpoint answers with a nested
// array: [[["translated","original",...],...],...]; segment texts are
// concatenated in order.
func (c *Client) request(ctx context.Context, text, source, target string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", source)
	params.Set("tl", target)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty translation payload")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(segment[0], &part); err != nil {
			return "", err
		}
		sb.WriteString(part)
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("no translated segments")
	}
	return sb.String(), nil
}
