package message

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"
)

// mockGenerativeClient is a test double for GenerativeClient.
type mockGenerativeClient struct {
	responses []*genai.GenerateContentResponse
	errs      []error
	callCount int
}

func (m *mockGenerativeClient) GenerateContent(_ context.Context, _ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	idx := m.callCount
	m.callCount++
	if idx < len(m.errs) && m.errs[idx] != nil {
		return nil, m.errs[idx]
	}
	if idx < len(m.responses) {
		return m.responses[idx], nil
	}
	return nil, errors.New("no more responses configured")
}

// makeResponse creates a genai response with the given text part.
func makeResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{Text: text},
			}}},
		},
	}
}

func TestGeminiGenerator_Success(t *testing.T) {
	mock := &mockGenerativeClient{
		responses: []*genai.GenerateContentResponse{
			makeResponse("Add input validation to login form\n"),
		},
	}
	factory := func(_ context.Context, _ string) (GenerativeClient, error) {
		return mock, nil
	}

	g := NewGeminiGenerator("fake-key", "test-model", factory)
	msg, err := g.Message(context.Background(), "diff text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "Add input validation to login form" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestGeminiGenerator_StripsQuotesAndBlankLines(t *testing.T) {
	mock := &mockGenerativeClient{
		responses: []*genai.GenerateContentResponse{
			makeResponse("\n\n\"Fix off-by-one in pager\"\nextra explanation line\n"),
		},
	}
	factory := func(_ context.Context, _ string) (GenerativeClient, error) {
		return mock, nil
	}

	g := NewGeminiGenerator("key", "", factory)
	msg, err := g.Message(context.Background(), "diff")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "Fix off-by-one in pager" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestGeminiGenerator_FactoryError(t *testing.T) {
	factory := func(_ context.Context, _ string) (GenerativeClient, error) {
		return nil, errors.New("factory boom")
	}

	g := NewGeminiGenerator("key", "", factory)
	_, err := g.Message(context.Background(), "diff")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "factory boom") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGeminiGenerator_RetriesOnTransientError(t *testing.T) {
	mock := &mockGenerativeClient{
		errs: []error{
			errors.New("transient failure"),
			nil,
		},
		responses: []*genai.GenerateContentResponse{
			nil,
			makeResponse("Refactor cache eviction"),
		},
	}
	factory := func(_ context.Context, _ string) (GenerativeClient, error) {
		return mock, nil
	}

	g := NewGeminiGenerator("key", "m", factory)
	msg, err := g.Message(context.Background(), "diff")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "Refactor cache eviction" {
		t.Errorf("unexpected message %q", msg)
	}
	if mock.callCount != 2 {
		t.Errorf("expected 2 GenerateContent calls, got %d", mock.callCount)
	}
}

func TestGeminiGenerator_EmptyResponse(t *testing.T) {
	mock := &mockGenerativeClient{
		responses: []*genai.GenerateContentResponse{
			{},
		},
	}
	factory := func(_ context.Context, _ string) (GenerativeClient, error) {
		return mock, nil
	}

	g := NewGeminiGenerator("key", "m", factory)
	if _, err := g.Message(context.Background(), "diff"); err == nil {
		t.Fatal("expected error for empty response")
	}
}
