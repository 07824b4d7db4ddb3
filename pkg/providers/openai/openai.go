// Package openai sends single-shot completion requests to the OpenAI API.
//
// Requests are routed by model family: o3-pro goes to the Responses API,
// other o1/o3 reasoning models go to Chat Completions with
// max_completion_tokens (and no temperature), and everything else goes to
// Chat Completions with max_tokens and temperature.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/openaipro/openaipro/pkg/modeladapter"
	"github.com/openaipro/openaipro/pkg/modeladapter/usage"
	"github.com/openaipro/openaipro/pkg/request"
)

// DefaultBaseURL is the base URL for the OpenAI API (no trailing slash).
const DefaultBaseURL = "https://api.openai.com"

// DefaultInstructions is the system prompt sent to the Responses API when
// none is configured.
const DefaultInstructions = "You are a helpful assistant."

const (
	completionsPath = "/v1/chat/completions"
	responsesPath   = "/v1/responses"
)

// Completion is the provider's reply to a single request.
type Completion struct {
	Text  string
	Usage usage.TokenCount
}

// Adapter sends completion requests to the OpenAI API.
type Adapter struct {
	modeladapter.ModelAdapter

	// Instructions is the system prompt for Responses API calls.
	// Empty falls back to DefaultInstructions.
	Instructions string
}

// New creates an Adapter configured for the OpenAI API.
// The baseURL should be "https://api.openai.com" (no trailing slash);
// a nil client falls back to the adapter's default client.
func New(baseURL, apiKey string, client *http.Client) *Adapter {
	a := &Adapter{
		ModelAdapter: modeladapter.New(baseURL, modeladapter.Auth{Key: apiKey}, client),
	}
	a.HeaderParser = modeladapter.ParseOpenAIRateLimitHeaders

	return a
}

// Complete sends exactly one request for the given resolved input and returns
// the completion text. Unset optional fields are omitted from the wire request
// so the provider's own defaults apply.
func (a *Adapter) Complete(ctx context.Context, req request.Request) (Completion, error) {
	if usesResponsesAPI(req.Model) {
		return a.completeResponses(ctx, req)
	}
	return a.completeChat(ctx, req)
}

// BuildPrompt combines context and query into the outgoing message content,
// with context preceding the query so the model treats it as background.
func BuildPrompt(req request.Request) string {
	if req.Context == "" {
		return req.Query
	}
	return fmt.Sprintf("Context:\n%s\n\nQuery: %s", req.Context, req.Query)
}

// usesResponsesAPI reports whether the model is served by the Responses API
// rather than Chat Completions. Covers o3-pro and its dated snapshots.
func usesResponsesAPI(model string) bool {
	return model == "o3-pro" || strings.HasPrefix(model, "o3-pro-")
}

// isReasoningModel reports whether the model is an o1/o3 family reasoning
// model, which takes max_completion_tokens and rejects temperature.
func isReasoningModel(model string) bool {
	return strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3")
}

func (a *Adapter) completeChat(ctx context.Context, req request.Request) (Completion, error) {
	apiReq := chatRequest{
		Model:           req.Model,
		Messages:        []chatMessage{{Role: "user", Content: BuildPrompt(req)}},
		ReasoningEffort: string(req.Effort),
	}

	if isReasoningModel(req.Model) {
		apiReq.MaxCompletionTokens = req.MaxTokens
	} else {
		apiReq.MaxTokens = req.MaxTokens
		apiReq.Temperature = req.Temperature
	}

	var resp chatResponse
	if err := a.PostJSON(ctx, completionsPath, apiReq, &resp); err != nil {
		return Completion{}, fmt.Errorf("openai: %w", err)
	}

	if len(resp.Choices) == 0 {
		return Completion{}, fmt.Errorf("openai: empty choices in response")
	}

	tc := usage.TokenCount{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}
	a.Usage.Add(tc)

	return Completion{Text: resp.Choices[0].Message.Content, Usage: tc}, nil
}

func (a *Adapter) completeResponses(ctx context.Context, req request.Request) (Completion, error) {
	instructions := a.Instructions
	if instructions == "" {
		instructions = DefaultInstructions
	}

	apiReq := responsesRequest{
		Model:           req.Model,
		Instructions:    instructions,
		Input:           BuildPrompt(req),
		MaxOutputTokens: req.MaxTokens,
		Stream:          false,
	}

	if req.Effort != "" {
		apiReq.Reasoning = &reasoningParam{Effort: string(req.Effort)}
	}

	var resp responsesResponse
	if err := a.PostJSON(ctx, responsesPath, apiReq, &resp); err != nil {
		return Completion{}, fmt.Errorf("openai: %w", err)
	}

	text, ok := resp.outputText()
	if !ok {
		return Completion{}, fmt.Errorf("openai: no output text in response")
	}

	tc := usage.TokenCount{
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
	}
	a.Usage.Add(tc)

	return Completion{Text: text, Usage: tc}, nil
}

// --- chat completions wire types ---

type chatRequest struct {
	Model               string        `json:"model"`
	Messages            []chatMessage `json:"messages"`
	MaxTokens           int           `json:"max_tokens,omitempty"`
	MaxCompletionTokens int           `json:"max_completion_tokens,omitempty"`
	Temperature         *float64      `json:"temperature,omitempty"`
	ReasoningEffort     string        `json:"reasoning_effort,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

type chatChoice struct {
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// --- responses wire types ---

type responsesRequest struct {
	Model           string          `json:"model"`
	Instructions    string          `json:"instructions,omitempty"`
	Input           string          `json:"input"`
	MaxOutputTokens int             `json:"max_output_tokens,omitempty"`
	Reasoning       *reasoningParam `json:"reasoning,omitempty"`
	Stream          bool            `json:"stream"`
}

type reasoningParam struct {
	Effort string `json:"effort"`
}

type responsesResponse struct {
	Output []outputItem   `json:"output"`
	Usage  responsesUsage `json:"usage"`
}

type outputItem struct {
	Type    string        `json:"type"`
	Content []contentItem `json:"content"`
}

type contentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type responsesUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// outputText walks the output items for the first message with output_text
// content.
func (r responsesResponse) outputText() (string, bool) {
	for _, item := range r.Output {
		if item.Type != "message" {
			continue
		}
		for _, c := range item.Content {
			if c.Type == "output_text" {
				return c.Text, true
			}
		}
	}
	return "", false
}
