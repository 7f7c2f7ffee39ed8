package services

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

const languageUnknown = "unknown"

var (
	languageDetector     lingua.LanguageDetector
	languageDetectorOnce sync.Once
)

func getLanguageDetector() lingua.LanguageDetector {
	languageDetectorOnce.Do(func() {
		languageDetector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English, lingua.Spanish, lingua.French, lingua.German, lingua.Portuguese,
				lingua.Italian, lingua.Thai, lingua.Vietnamese, lingua.Indonesian, lingua.Chinese,
				lingua.Japanese, lingua.Korean,
			).
			WithLowAccuracyMode().
			Build()
	})
	return languageDetector
}

// DetectLanguage returns the ISO 639-1 code of text, or "unknown".
func DetectLanguage(text string) string {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return languageUnknown
	}
	if lang, ok := getLanguageDetector().DetectLanguageOf(text); ok {
		return strings.ToLower(lang.IsoCode639_1().String())
	}
	return languageUnknown
}
