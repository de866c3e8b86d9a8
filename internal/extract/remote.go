package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/gojobsearch/internal/filter"
	"github.com/hyperifyio/gojobsearch/internal/llm"
)

// ErrRemoteUnavailable means no client or model was configured, so remote
// extraction cannot run at all.
var ErrRemoteUnavailable = errors.New("remote extractor not configured")

// ErrBadReply means the model answered but the reply did not contain a
// parseable JSON object.
var ErrBadReply = errors.New("remote reply is not a JSON object")

const remoteSystemMessage = "You extract job-search filters into strict JSON. " +
	"Respond with a single JSON object and no narration. Keys, all optional: " +
	"location, target_level, degree, has_remote (true/false), employment_type, " +
	"q (free-text keywords). Only include keys clearly present in the query."

const remoteUserTemplate = `Extract structured job search filters from a user's natural language query.

Example:
Input: "Internships in Bangalore for pursuing degree"
Output: {"location": "Bangalore, India", "target_level": "INTERN_AND_APPRENTICE", "degree": "PURSUING_DEGREE"}

Input: %s
Output:`

// jsonObjectRe finds the JSON object inside a reply that may carry prose or
// code fences around it.
var jsonObjectRe = regexp.MustCompile(`\{[\s\S]*\}`)

// Remote extracts filters by asking an OpenAI-compatible chat endpoint and
// enforcing a JSON-only contract. Callers are expected to fall back to the
// heuristic extractor on any error.
type Remote struct {
	Client llm.Client
	Model  string
}

// Extract implements Extractor using the chat completions API.
func (r *Remote) Extract(ctx context.Context, query string) (filter.Model, error) {
	if r == nil || r.Client == nil || r.Model == "" {
		return filter.Model{}, ErrRemoteUnavailable
	}

	quoted, err := json.Marshal(query)
	if err != nil {
		return filter.Model{}, fmt.Errorf("quote query: %w", err)
	}
	user := fmt.Sprintf(remoteUserTemplate, quoted)

	resp, err := r.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: remoteSystemMessage},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.1,
		MaxTokens:   300,
		N:           1,
	})
	if err != nil {
		return filter.Model{}, fmt.Errorf("remote extract: %w", err)
	}
	if len(resp.Choices) == 0 {
		return filter.Model{}, errors.New("remote extract: no choices")
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	obj := jsonObjectRe.FindString(raw)
	if obj == "" {
		return filter.Model{}, fmt.Errorf("%w: %q", ErrBadReply, clip(raw, 120))
	}
	m, dropped, err := filter.DecodeJSON([]byte(obj))
	if err != nil {
		return filter.Model{}, fmt.Errorf("%w: %v", ErrBadReply, err)
	}
	if len(dropped) > 0 {
		log.Debug().Strs("keys", dropped).Msg("dropped unrecognized filter keys from remote reply")
	}
	return m, nil
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
