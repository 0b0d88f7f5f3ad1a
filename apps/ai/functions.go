package ai

import (
	"fmt"
	"strings"

	"github.com/chatlog-io/chatlog-backend/apps/models"
)

// Transcript renders a conversation's messages into the plain-text form the
// prompts operate on, one message per line, in the order given.
func Transcript(messages []models.Message) string {
	lines := make([]string, 0, len(messages))
	for _, message := range messages {
		lines = append(lines, fmt.Sprintf("%s (%s): %s", message.SenderType, message.UserID, message.Content))
	}
	return strings.Join(lines, "\n")
}

// Summarize produces a free-text summary of the transcript.
func (c *Client) Summarize(transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", fmt.Errorf("transcript is empty")
	}

	prompt, err := c.prompts.summarizePrompt()
	if err != nil {
		return "", fmt.Errorf("failed to render summarize prompt: %w", err)
	}

	messages := []ChatMessage{
		{Role: "system", Content: prompt},
		{Role: "user", Content: transcript},
	}

	resp, err := c.ChatCompletion(messages, 1000, 0.5)
	if err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no summary received")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// AnalyzeSentiment classifies the transcript's overall sentiment. The result
// is the model's free-text verdict (label plus a brief explanation).
func (c *Client) AnalyzeSentiment(transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", fmt.Errorf("transcript is empty")
	}

	prompt, err := c.prompts.sentimentPrompt()
	if err != nil {
		return "", fmt.Errorf("failed to render sentiment prompt: %w", err)
	}

	messages := []ChatMessage{
		{Role: "system", Content: prompt},
		{Role: "user", Content: transcript},
	}

	resp, err := c.ChatCompletion(messages, 500, 0.3)
	if err != nil {
		return "", fmt.Errorf("sentiment analysis failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no sentiment received")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// ExtractKeywords asks for the transcript's top keywords and parses the
// model's comma-separated answer. Blank entries are dropped.
func (c *Client) ExtractKeywords(transcript string) ([]string, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, fmt.Errorf("transcript is empty")
	}

	prompt, err := c.prompts.keywordsPrompt()
	if err != nil {
		return nil, fmt.Errorf("failed to render keywords prompt: %w", err)
	}

	messages := []ChatMessage{
		{Role: "system", Content: prompt},
		{Role: "user", Content: transcript},
	}

	resp, err := c.ChatCompletion(messages, 500, 0.3)
	if err != nil {
		return nil, fmt.Errorf("keyword extraction failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no keywords received")
	}

	return ParseKeywords(resp.Choices[0].Message.Content), nil
}

// ParseKeywords splits a comma-separated keyword list, trimming whitespace
// and dropping empty entries.
func ParseKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		keyword := strings.TrimSpace(part)
		if keyword == "" {
			continue
		}
		keywords = append(keywords, keyword)
	}
	return keywords
}
