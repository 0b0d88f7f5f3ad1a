package ai

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chatlog-io/chatlog-backend/apps/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptFormat(t *testing.T) {
	messages := []models.Message{
		{UserID: "user-1", SenderType: models.SenderTypeUser, Content: "Hi, my order is late."},
		{UserID: "agent-7", SenderType: models.SenderTypeAssistant, Content: "Let me check that for you."},
	}

	expected := "user (user-1): Hi, my order is late.\n" +
		"assistant (agent-7): Let me check that for you."
	assert.Equal(t, expected, Transcript(messages))
}

func TestTranscriptEmpty(t *testing.T) {
	assert.Equal(t, "", Transcript(nil))
}

func TestParseKeywords(t *testing.T) {
	keywords := ParseKeywords(" billing , refund ,, late delivery , ")
	assert.Equal(t, []string{"billing", "refund", "late delivery"}, keywords)

	assert.Empty(t, ParseKeywords("   "))
}

// completionServer returns a stub chat-completions endpoint answering every
// request with the given content.
func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Messages)

		body := map[string]any{
			"model": req.Model,
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       ChatMessage{Role: "assistant", Content: content},
					"finish_reason": "stop",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}))
}

func TestSummarize(t *testing.T) {
	server := completionServer(t, "  The user reported a late order and the agent resolved it.  ")
	defer server.Close()

	client := NewClient("test-key", server.URL, "gpt-3.5-turbo", 0)
	summary, err := client.Summarize("user (u1): my order is late")
	require.NoError(t, err)
	assert.Equal(t, "The user reported a late order and the agent resolved it.", summary)
}

func TestSummarizeEmptyTranscript(t *testing.T) {
	client := NewClient("test-key", "http://127.0.0.1:0", "gpt-3.5-turbo", 0)
	_, err := client.Summarize("   ")
	assert.Error(t, err)
}

func TestExtractKeywords(t *testing.T) {
	server := completionServer(t, "billing, refund, shipping delay")
	defer server.Close()

	client := NewClient("test-key", server.URL, "gpt-3.5-turbo", 0)
	keywords, err := client.ExtractKeywords("user (u1): where is my refund?")
	require.NoError(t, err)
	assert.Equal(t, []string{"billing", "refund", "shipping delay"}, keywords)
}

func TestChatCompletionAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	client := NewClient("bad-key", server.URL, "gpt-3.5-turbo", 0)
	_, err := client.AnalyzeSentiment("user (u1): hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestPromptRendering(t *testing.T) {
	prompts := DefaultPrompts()

	keywords, err := prompts.keywordsPrompt()
	require.NoError(t, err)
	assert.Contains(t, keywords, "top 5")

	prompts.KeywordCount = 7
	keywords, err = prompts.keywordsPrompt()
	require.NoError(t, err)
	assert.Contains(t, keywords, "top 7")

	prompts.Keywords = "List {{KeywordCount}} topics."
	keywords, err = prompts.keywordsPrompt()
	require.NoError(t, err)
	assert.Equal(t, "List 7 topics.", keywords)

	summarize, err := prompts.summarizePrompt()
	require.NoError(t, err)
	assert.Equal(t, DefaultSummarizePrompt, summarize)
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "en", DetectLanguage("The quick brown fox jumps over the lazy dog and then takes a nap."))
	assert.Equal(t, "", DetectLanguage("hi"))
}
