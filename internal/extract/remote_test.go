package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/gojobsearch/internal/filter"
)

type fakeChatClient struct {
	content string
	err     error
	lastReq openai.ChatCompletionRequest
}

func (f *fakeChatClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.content}},
		},
	}, nil
}

func TestRemote_UnconfiguredFailsFast(t *testing.T) {
	var r *Remote
	if _, err := r.Extract(context.Background(), "anything"); !errors.Is(err, ErrRemoteUnavailable) {
		t.Fatalf("nil extractor: expected ErrRemoteUnavailable, got %v", err)
	}
	r = &Remote{Model: "gpt-3.5-turbo"}
	if _, err := r.Extract(context.Background(), "anything"); !errors.Is(err, ErrRemoteUnavailable) {
		t.Fatalf("missing client: expected ErrRemoteUnavailable, got %v", err)
	}
}

func TestRemote_ParsesObjectSurroundedByProse(t *testing.T) {
	fake := &fakeChatClient{content: "Sure, here you go:\n{\"location\": \"Bangalore, India\", \"has_remote\": true}\nHope that helps."}
	r := &Remote{Client: fake, Model: "gpt-3.5-turbo"}

	m, err := r.Extract(context.Background(), "remote jobs in Bangalore")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got := m.Get(filter.KeyLocation); got != "Bangalore, India" {
		t.Fatalf("expected location, got %q", got)
	}
	if got := m.Get(filter.KeyHasRemote); got != "true" {
		t.Fatalf("expected boolean coerced has_remote, got %q", got)
	}
}

func TestRemote_PromptEmbedsQuery(t *testing.T) {
	fake := &fakeChatClient{content: "{}"}
	r := &Remote{Client: fake, Model: "gpt-3.5-turbo"}

	if _, err := r.Extract(context.Background(), "entry roles in London"); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(fake.lastReq.Messages) != 2 {
		t.Fatalf("expected system+user messages, got %d", len(fake.lastReq.Messages))
	}
	if !strings.Contains(fake.lastReq.Messages[1].Content, "entry roles in London") {
		t.Fatalf("expected query embedded in user prompt: %q", fake.lastReq.Messages[1].Content)
	}
}

func TestRemote_NonJSONReplyIsBadReply(t *testing.T) {
	fake := &fakeChatClient{content: "I could not find any filters in that query."}
	r := &Remote{Client: fake, Model: "gpt-3.5-turbo"}

	if _, err := r.Extract(context.Background(), "anything"); !errors.Is(err, ErrBadReply) {
		t.Fatalf("expected ErrBadReply, got %v", err)
	}
}

func TestRemote_BrokenJSONIsBadReply(t *testing.T) {
	fake := &fakeChatClient{content: `{"location": "Bangalore, India",}`}
	r := &Remote{Client: fake, Model: "gpt-3.5-turbo"}

	if _, err := r.Extract(context.Background(), "anything"); !errors.Is(err, ErrBadReply) {
		t.Fatalf("expected ErrBadReply, got %v", err)
	}
}

func TestRemote_UpstreamErrorWrapped(t *testing.T) {
	boom := errors.New("connection refused")
	fake := &fakeChatClient{err: boom}
	r := &Remote{Client: fake, Model: "gpt-3.5-turbo"}

	_, err := r.Extract(context.Background(), "anything")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped upstream error, got %v", err)
	}
}

func TestRemote_DropsUnrecognizedKeys(t *testing.T) {
	fake := &fakeChatClient{content: `{"location": "London", "vibe": "great"}`}
	r := &Remote{Client: fake, Model: "gpt-3.5-turbo"}

	m, err := r.Extract(context.Background(), "jobs in London")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if m.Len() != 1 || m.Get(filter.KeyLocation) != "London" {
		t.Fatalf("expected only recognized keys kept, got %+v", m.Pairs())
	}
}
