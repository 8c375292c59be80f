package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ollama/ollama/api"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"github.com/talenthub/internlens/internal/config"
	"github.com/talenthub/internlens/internal/models"
	"github.com/talenthub/internlens/pkg/logger"
)

// InsightAnalyzer is the slice of the LLM client the report pipeline
// depends on; it exists so pipelines can run against a substitute client.
type InsightAnalyzer interface {
	Analyze(ctx context.Context, internName string, logTexts []string) *InsightResult
}

// LLMService issues a single blocking analysis call to the configured
// inference endpoint. No retries: a failed or malformed call yields one
// degraded result, never an error that aborts report generation upstream.
type LLMService struct {
	cfg *config.LLMConfig
}

func NewLLMService(cfg *config.LLMConfig) *LLMService {
	return &LLMService{cfg: cfg}
}

// InsightResult distinguishes three outcomes: a parsed insight, a reachable
// model whose output could not be parsed (Raw kept for diagnostics), and a
// transport- or server-level failure (Err set).
type InsightResult struct {
	Insight *models.LLMInsight
	Raw     string
	Err     error
}

func (r *InsightResult) OK() bool {
	return r.Err == nil && r.Insight != nil
}

// Analyze cleans the log texts, builds the analysis prompt and returns the
// parsed model output. The call is bounded by the configured timeout and
// never blocks indefinitely.
func (s *LLMService) Analyze(ctx context.Context, internName string, logTexts []string) *InsightResult {
	cleaned := make([]string, 0, len(logTexts))
	for _, text := range logTexts {
		cleaned = append(cleaned, CleanText(text))
	}
	logText := TruncateForPrompt(strings.Join(cleaned, "\n"), s.cfg.MaxPromptChars)
	prompt := BuildAnalysisPrompt(internName, logText)

	timeout := time.Duration(s.cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	output, err := s.generate(ctx, prompt)
	if err != nil {
		logger.Warn().Err(err).Str("provider", s.cfg.Provider).Msg("llm call failed")
		return &InsightResult{Err: err}
	}

	insight, ok := ParseInsight(output)
	if !ok {
		logger.Warn().Int("output_len", len(output)).Msg("llm output carried no parseable JSON")
		return &InsightResult{Raw: output}
	}

	return &InsightResult{Insight: insight}
}

// generate dispatches to the provider-specific call based on config.
func (s *LLMService) generate(ctx context.Context, prompt string) (string, error) {
	switch s.cfg.Provider {
	case "anthropic":
		return s.callAnthropic(ctx, prompt)
	case "gemini":
		return s.callGemini(ctx, prompt)
	case "azure":
		return s.callAzure(ctx, prompt)
	case "openai":
		return s.callOpenAI(ctx, prompt)
	default:
		// ollama and other locally hosted endpoints
		return s.callOllama(ctx, prompt)
	}
}

// callOllama targets a locally hosted Ollama endpoint. Streaming is
// disabled: the full response is needed before parsing.
func (s *LLMService) callOllama(ctx context.Context, prompt string) (string, error) {
	baseURL := s.cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid Ollama base URL: %w", err)
	}
	client := api.NewClient(u, http.DefaultClient)

	model := s.cfg.Model
	if model == "" {
		model = "gemma3:1b"
	}

	stream := false
	var content strings.Builder
	err = client.Generate(ctx, &api.GenerateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: &stream,
		Options: map[string]interface{}{
			"temperature": s.cfg.Temperature,
			"top_k":       s.cfg.TopK,
			"top_p":       s.cfg.TopP,
		},
	}, func(resp api.GenerateResponse) error {
		content.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("Ollama API error: %w", err)
	}

	return content.String(), nil
}

// callOpenAI handles OpenAI and OpenAI-compatible APIs (including custom endpoints)
func (s *LLMService) callOpenAI(ctx context.Context, prompt string) (string, error) {
	clientConfig := openai.DefaultConfig(s.cfg.APIKey)
	if s.cfg.BaseURL != "" {
		clientConfig.BaseURL = s.cfg.BaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	temperature := float32(0.3)
	if s.cfg.Temperature > 0 {
		temperature = float32(s.cfg.Temperature)
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

// callAzure handles Azure OpenAI; the Model field is the deployment name.
func (s *LLMService) callAzure(ctx context.Context, prompt string) (string, error) {
	clientConfig := openai.DefaultAzureConfig(s.cfg.APIKey, s.cfg.BaseURL)
	client := openai.NewClientWithConfig(clientConfig)

	temperature := float32(0.3)
	if s.cfg.Temperature > 0 {
		temperature = float32(s.cfg.Temperature)
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("Azure OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from Azure OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

// callAnthropic handles the Anthropic API using the native SDK
func (s *LLMService) callAnthropic(ctx context.Context, prompt string) (string, error) {
	client := anthropic.NewClient(
		option.WithAPIKey(s.cfg.APIKey),
	)

	model := s.cfg.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 4096,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	var content strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}

	return content.String(), nil
}

// callGemini handles the Google Gemini API using the native SDK
func (s *LLMService) callGemini(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: s.cfg.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("Gemini client error: %w", err)
	}

	model := s.cfg.Model
	if model == "" {
		model = "gemini-3.0-flash"
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	return resp.Text(), nil
}

// ParseInsight locates the first JSON-object-like substring in the model
// output (greedy: first '{' through last '}') and parses it. Missing list
// fields default to empty slices, never nil.
func ParseInsight(output string) (*models.LLMInsight, bool) {
	start := strings.IndexByte(output, '{')
	end := strings.LastIndexByte(output, '}')
	if start == -1 || end <= start {
		return nil, false
	}

	var insight models.LLMInsight
	if err := json.Unmarshal([]byte(output[start:end+1]), &insight); err != nil {
		return nil, false
	}

	insight.ApplyDefaults()
	return &insight, true
}
