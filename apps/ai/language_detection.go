package ai

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

var (
	detector     lingua.LanguageDetector
	detectorOnce sync.Once
)

// getDetector returns a singleton language detector instance
func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		// Restricted language set keeps model load time and memory bounded
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English,
				lingua.Spanish,
				lingua.French,
				lingua.German,
				lingua.Italian,
				lingua.Portuguese,
				lingua.Dutch,
				lingua.Russian,
				lingua.Arabic,
				lingua.Persian,
				lingua.Turkish,
				lingua.Chinese,
				lingua.Japanese,
				lingua.Korean,
				lingua.Hindi,
			).
			WithMinimumRelativeDistance(0.25).
			Build()
	})
	return detector
}

// languageCodeMap maps lingua languages to ISO 639-1 codes
var languageCodeMap = map[lingua.Language]string{
	lingua.English:    "en",
	lingua.Spanish:    "es",
	lingua.French:     "fr",
	lingua.German:     "de",
	lingua.Italian:    "it",
	lingua.Portuguese: "pt",
	lingua.Dutch:      "nl",
	lingua.Russian:    "ru",
	lingua.Arabic:     "ar",
	lingua.Persian:    "fa",
	lingua.Turkish:    "tr",
	lingua.Chinese:    "zh",
	lingua.Japanese:   "ja",
	lingua.Korean:     "ko",
	lingua.Hindi:      "hi",
}

// DetectLanguage returns the ISO 639-1 code of the text's dominant language,
// or empty string when detection is not confident or the text is too short.
func DetectLanguage(text string) string {
	text = strings.TrimSpace(text)
	if len(text) < 3 {
		return ""
	}

	language, ok := getDetector().DetectLanguageOf(text)
	if !ok {
		return ""
	}

	code, ok := languageCodeMap[language]
	if !ok {
		return ""
	}
	return code
}
