package enhancement

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/model"
)

// Client asks a remote explanation service to justify a detection score.
// Implementations make a single attempt; the orchestrator owns timeout and
// fallback policy.
type Client interface {
	Explain(ctx context.Context, content string, score model.Score) ([]Reason, error)
}

const explainSystemPrompt = `You are an AI-content detection analyst. Given a text and a detector verdict,
explain the verdict. Respond with JSON only, no prose, in the form:
{"reasons":[{"category":"...","title":"...","description":"...","severity":"low|medium|high"}]}
Provide between one and five reasons, ordered from most to least significant.`

// Maximum content forwarded to the explanation service. Longer submissions
// are truncated; the detector score already encodes the full input.
const maxExplainContentChars = 4000

// LLMClient is a Client backed by an OpenAI-compatible chat-completions
// endpoint.
type LLMClient struct {
	client openai.Client
	model  string
}

// LLMClientOptions configures the explanation endpoint.
type LLMClientOptions struct {
	Endpoint string
	APIKey   string
	Model    string
}

// NewLLMClient builds a client for the configured endpoint.
func NewLLMClient(options LLMClientOptions) *LLMClient {
	// A single attempt per request; the caller decides whether to retry the
	// whole pipeline.
	opts := []option.RequestOption{
		option.WithBaseURL(options.Endpoint),
		option.WithMaxRetries(0),
	}
	if options.APIKey != "" {
		opts = append(opts, option.WithAPIKey(options.APIKey))
	}
	return &LLMClient{
		client: openai.NewClient(opts...),
		model:  options.Model,
	}
}

func (c *LLMClient) Explain(ctx context.Context, content string, score model.Score) ([]Reason, error) {
	if len(content) > maxExplainContentChars {
		content = content[:maxExplainContentChars]
	}

	verdict := "human-written"
	if score.IsPositive {
		verdict = "AI-generated"
	}
	userPrompt := fmt.Sprintf(
		"Verdict: %s (probability %.3f, confidence %.3f)\n\nText:\n%s",
		verdict, score.Probability, score.Confidence, content,
	)

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(explainSystemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("explanation call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("explanation service returned no choices")
	}

	return parseReasons(resp.Choices[0].Message.Content)
}

// parseReasons decodes and validates the structured payload. Anything
// non-JSON, empty, or missing required fields is an error; the orchestrator
// turns every such error into the fallback path.
func parseReasons(raw string) ([]Reason, error) {
	payload := extractJSONObject(raw)
	if payload == "" {
		return nil, fmt.Errorf("explanation response contains no JSON object")
	}

	var parsed struct {
		Reasons []Reason `json:"reasons"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, fmt.Errorf("malformed explanation payload: %w", err)
	}
	if len(parsed.Reasons) == 0 {
		return nil, fmt.Errorf("explanation payload has no reasons")
	}
	for i, r := range parsed.Reasons {
		if r.Category == "" || r.Title == "" || r.Description == "" || r.Severity == "" {
			return nil, fmt.Errorf("explanation reason %d is missing required fields", i)
		}
	}
	return parsed.Reasons, nil
}

// extractJSONObject strips any surrounding prose or code fences the model may
// have added and returns the outermost JSON object.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return raw[start : end+1]
}
