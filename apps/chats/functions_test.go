package chats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chatlog-io/chatlog-backend/apps/ai"
	"github.com/chatlog-io/chatlog-backend/apps/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *models.Store {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, conn.AutoMigrate(&models.Conversation{}, &models.Message{}, &models.Summary{}, &models.Insight{}))
	return models.NewStore(conn)
}

func seedConversation(t *testing.T, store *models.Store) *models.Conversation {
	t.Helper()

	conversation, err := store.CreateConversation(nil, nil)
	require.NoError(t, err)

	lines := []string{
		"Hello, I cannot log into my account anymore.",
		"Sorry to hear that, have you tried resetting your password?",
		"Yes, but the reset email never arrives in my inbox.",
		"I have sent it again, please also check the spam folder.",
	}
	for i, line := range lines {
		sender := models.SenderTypeUser
		userID := "user-1"
		if i%2 == 1 {
			sender = models.SenderTypeAssistant
			userID = "agent-1"
		}
		_, err := store.CreateMessage(conversation.ID, userID, sender, line, nil)
		require.NoError(t, err)
	}
	return conversation
}

// stubAI serves canned chat completions, keyed on the system prompt, with
// switchable failures per analysis.
type stubAI struct {
	failSentiment bool
	failKeywords  bool
	failSummarize bool
}

func (s *stubAI) server(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Messages)
		system := req.Messages[0].Content

		var content string
		var fail bool
		switch {
		case strings.Contains(system, "sentiment"):
			content = "positive - the customer's problem was resolved"
			fail = s.failSentiment
		case strings.Contains(system, "keywords"):
			content = "login, password reset, email delivery"
			fail = s.failKeywords
		default:
			content = "The customer could not log in and support re-sent the password reset email."
			fail = s.failSummarize
		}

		w.Header().Set("Content-Type", "application/json")
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":{"message":"model overloaded","type":"server_error"}}`))
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": ai.ChatMessage{Role: "assistant", Content: content}},
			},
		})
	}))
}

func newStubClient(t *testing.T, stub *stubAI) (*ai.Client, func()) {
	t.Helper()
	server := stub.server(t)
	return ai.NewClient("test-key", server.URL, "gpt-3.5-turbo", 0), server.Close
}

func countInsights(t *testing.T, store *models.Store, conversationID uuid.UUID, insightType string) int {
	t.Helper()
	insights, err := store.GetInsightsByConversationAndType(conversationID, insightType)
	require.NoError(t, err)
	return len(insights)
}

func TestSummarizeConversation(t *testing.T) {
	store := newTestStore(t)
	conversation := seedConversation(t, store)

	client, closeServer := newStubClient(t, &stubAI{})
	defer closeServer()

	summary, err := SummarizeConversation(store, client, conversation.ID)
	require.NoError(t, err)
	assert.Equal(t, "The customer could not log in and support re-sent the password reset email.", summary.SummaryText)
	require.NotNil(t, summary.ModelUsed)
	assert.Equal(t, "gpt-3.5-turbo", *summary.ModelUsed)

	var metadata map[string]any
	require.NoError(t, json.Unmarshal(summary.Metadata, &metadata))
	assert.Equal(t, "en", metadata["language"])
}

func TestSummarizeConversationConflict(t *testing.T) {
	store := newTestStore(t)
	conversation := seedConversation(t, store)

	client, closeServer := newStubClient(t, &stubAI{})
	defer closeServer()

	_, err := SummarizeConversation(store, client, conversation.ID)
	require.NoError(t, err)

	_, err = SummarizeConversation(store, client, conversation.ID)
	assert.ErrorIs(t, err, models.ErrSummaryExists)
}

func TestSummarizeConversationNoMessages(t *testing.T) {
	store := newTestStore(t)
	conversation, err := store.CreateConversation(nil, nil)
	require.NoError(t, err)

	client, closeServer := newStubClient(t, &stubAI{})
	defer closeServer()

	_, err = SummarizeConversation(store, client, conversation.ID)
	assert.ErrorIs(t, err, ErrNoMessages)

	summary, err := store.GetSummaryByConversation(conversation.ID)
	require.NoError(t, err)
	assert.Nil(t, summary, "a failed summarize must not leave a summary behind")
}

func TestSummarizeConversationUnknown(t *testing.T) {
	store := newTestStore(t)

	client, closeServer := newStubClient(t, &stubAI{})
	defer closeServer()

	_, err := SummarizeConversation(store, client, uuid.New())
	assert.ErrorIs(t, err, models.ErrConversationNotFound)
}

func TestSummarizeConversationAIFailure(t *testing.T) {
	store := newTestStore(t)
	conversation := seedConversation(t, store)

	client, closeServer := newStubClient(t, &stubAI{failSummarize: true})
	defer closeServer()

	_, err := SummarizeConversation(store, client, conversation.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")

	summary, err := store.GetSummaryByConversation(conversation.ID)
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestSummarizeConversationNilClient(t *testing.T) {
	store := newTestStore(t)
	conversation := seedConversation(t, store)

	_, err := SummarizeConversation(store, nil, conversation.ID)
	assert.ErrorIs(t, err, ErrAIUnavailable)
}

func TestGenerateInsights(t *testing.T) {
	store := newTestStore(t)
	conversation := seedConversation(t, store)

	client, closeServer := newStubClient(t, &stubAI{})
	defer closeServer()

	insights, err := GenerateConversationInsights(store, client, conversation.ID)
	require.NoError(t, err)
	require.Len(t, insights, 2)

	byType := make(map[string]InsightResult)
	for _, insight := range insights {
		byType[insight.Type] = insight
	}
	assert.Contains(t, byType[models.InsightTypeSentiment].Result, "positive")
	assert.Equal(t, []string{"login", "password reset", "email delivery"}, byType[models.InsightTypeKeywords].Keywords)

	assert.Equal(t, 1, countInsights(t, store, conversation.ID, models.InsightTypeSentiment))
	assert.Equal(t, 1, countInsights(t, store, conversation.ID, models.InsightTypeKeywords))
}

func TestGenerateInsightsSentimentFailure(t *testing.T) {
	store := newTestStore(t)
	conversation := seedConversation(t, store)

	client, closeServer := newStubClient(t, &stubAI{failSentiment: true})
	defer closeServer()

	insights, err := GenerateConversationInsights(store, client, conversation.ID)
	require.NoError(t, err)
	require.Len(t, insights, 1)
	assert.Equal(t, models.InsightTypeKeywords, insights[0].Type)

	assert.Equal(t, 0, countInsights(t, store, conversation.ID, models.InsightTypeSentiment))
	assert.Equal(t, 1, countInsights(t, store, conversation.ID, models.InsightTypeKeywords))
}

func TestGenerateInsightsKeywordsFailure(t *testing.T) {
	store := newTestStore(t)
	conversation := seedConversation(t, store)

	client, closeServer := newStubClient(t, &stubAI{failKeywords: true})
	defer closeServer()

	insights, err := GenerateConversationInsights(store, client, conversation.ID)
	require.NoError(t, err)
	require.Len(t, insights, 1)
	assert.Equal(t, models.InsightTypeSentiment, insights[0].Type)

	assert.Equal(t, 1, countInsights(t, store, conversation.ID, models.InsightTypeSentiment))
	assert.Equal(t, 0, countInsights(t, store, conversation.ID, models.InsightTypeKeywords))
}

func TestGenerateInsightsUnknownConversation(t *testing.T) {
	store := newTestStore(t)

	client, closeServer := newStubClient(t, &stubAI{})
	defer closeServer()

	_, err := GenerateConversationInsights(store, client, uuid.New())
	assert.ErrorIs(t, err, models.ErrConversationNotFound)
}

func TestGenerateInsightsNilClient(t *testing.T) {
	store := newTestStore(t)
	conversation := seedConversation(t, store)

	_, err := GenerateConversationInsights(store, nil, conversation.ID)
	assert.ErrorIs(t, err, ErrAIUnavailable)
}

func TestMetadataJSON(t *testing.T) {
	raw, err := metadataJSON(nil)
	require.NoError(t, err)
	assert.Nil(t, raw)

	raw, err = metadataJSON(map[string]any{"language": "en"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"language":"en"}`, string(raw))
}
