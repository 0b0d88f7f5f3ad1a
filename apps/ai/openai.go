package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/getevo/evo/v2/lib/log"
	"github.com/getevo/evo/v2/lib/settings"
)

// Client is a chat-completions API client. The credential, endpoint and
// model are explicit constructor arguments rather than ambient state.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	prompts    Prompts
	httpClient *http.Client
}

// ChatMessage represents a message in the chat
type ChatMessage struct {
	Role    string `json:"role"` // system, user, assistant
	Content string `json:"content"`
}

// ChatCompletionRequest represents the request to the chat completions API
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

// ChatCompletionResponse represents the response from the chat completions API
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

var (
	client     *Client
	clientLock sync.RWMutex
)

// NewClient creates a chat-completions client with a bounded request timeout.
func NewClient(apiKey, baseURL, model string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		prompts: DefaultPrompts(),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetPrompts replaces the client's prompt templates. Empty template fields
// keep their defaults.
func (c *Client) SetPrompts(p Prompts) {
	if p.Summarize != "" {
		c.prompts.Summarize = p.Summarize
	}
	if p.Sentiment != "" {
		c.prompts.Sentiment = p.Sentiment
	}
	if p.Keywords != "" {
		c.prompts.Keywords = p.Keywords
	}
	if p.KeywordCount > 0 {
		c.prompts.KeywordCount = p.KeywordCount
	}
}

// InitClient initializes the process-wide client from settings
func InitClient() error {
	apiKey := settings.Get("OPENAI.API_KEY").String()
	if apiKey == "" {
		log.Warning("OPENAI.API_KEY is not configured")
		return fmt.Errorf("OPENAI.API_KEY is not configured")
	}

	baseURL := settings.Get("OPENAI.ENDPOINT", "https://api.openai.com/v1").String()
	model := settings.Get("OPENAI.MODEL", "gpt-3.5-turbo").String()
	timeout, _ := settings.Get("OPENAI.TIMEOUT", "30s").Duration()

	c := NewClient(apiKey, baseURL, model, timeout)
	c.SetPrompts(Prompts{
		Summarize:    settings.Get("AI.SUMMARIZE_PROMPT").String(),
		Sentiment:    settings.Get("AI.SENTIMENT_PROMPT").String(),
		Keywords:     settings.Get("AI.KEYWORDS_PROMPT").String(),
		KeywordCount: settings.Get("AI.KEYWORD_COUNT", 5).Int(),
	})

	clientLock.Lock()
	client = c
	clientLock.Unlock()

	log.Info("AI client initialized with endpoint: %s, model: %s", baseURL, model)
	return nil
}

// GetClient returns the process-wide client, or nil when AI is not configured
func GetClient() *Client {
	clientLock.RLock()
	defer clientLock.RUnlock()
	return client
}

// Model returns the model identifier completions are requested with
func (c *Client) Model() string {
	return c.model
}

// ChatCompletion sends a chat completion request
func (c *Client) ChatCompletion(messages []ChatMessage, maxTokens int, temperature float64) (*ChatCompletionResponse, error) {
	if maxTokens == 0 {
		maxTokens = 1000
	}
	if temperature == 0 {
		temperature = 0.5
	}

	req := ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequest("POST", c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if result.Error != nil {
		return nil, fmt.Errorf("OpenAI API error: %s", result.Error.Message)
	}

	return &result, nil
}
