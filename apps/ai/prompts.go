package ai

import (
	"bytes"

	"github.com/CloudyKit/jet/v6"
)

// Default system instructions. Operators can override each template via
// settings (AI.SUMMARIZE_PROMPT, AI.SENTIMENT_PROMPT, AI.KEYWORDS_PROMPT);
// overrides are rendered with the same variables as the defaults.
const (
	DefaultSummarizePrompt = `Summarize the following conversation:`

	DefaultSentimentPrompt = `Analyze the sentiment of the following conversation. Provide the overall sentiment as 'positive', 'negative', or 'neutral' and a brief explanation.`

	DefaultKeywordsPrompt = `Extract the top {{KeywordCount}} most important keywords or topics from the following conversation. Provide them as a comma-separated list.`

	DefaultKeywordCount = 5
)

// Prompts holds the system instruction templates a Client uses.
type Prompts struct {
	Summarize    string
	Sentiment    string
	Keywords     string
	KeywordCount int
}

// DefaultPrompts returns the built-in prompt templates.
func DefaultPrompts() Prompts {
	return Prompts{
		Summarize:    DefaultSummarizePrompt,
		Sentiment:    DefaultSentimentPrompt,
		Keywords:     DefaultKeywordsPrompt,
		KeywordCount: DefaultKeywordCount,
	}
}

// renderPrompt renders a jet template from memory with the given variables.
func renderPrompt(templateContent string, vars jet.VarMap) (string, error) {
	loader := jet.NewInMemLoader()
	loader.Set("prompt", templateContent)

	set := jet.NewSet(loader)
	tmpl, err := set.GetTemplate("prompt")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars, nil); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (p Prompts) summarizePrompt() (string, error) {
	return renderPrompt(p.Summarize, make(jet.VarMap))
}

func (p Prompts) sentimentPrompt() (string, error) {
	return renderPrompt(p.Sentiment, make(jet.VarMap))
}

func (p Prompts) keywordsPrompt() (string, error) {
	count := p.KeywordCount
	if count <= 0 {
		count = DefaultKeywordCount
	}
	vars := make(jet.VarMap)
	vars.Set("KeywordCount", count)
	return renderPrompt(p.Keywords, vars)
}
