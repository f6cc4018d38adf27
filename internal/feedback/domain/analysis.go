package domain

// DetectedLanguage is the outcome of the language detection stage.
type DetectedLanguage struct {
	Code       string  `json:"language"`
	Name       string  `json:"languageName"`
	Confidence float64 `json:"confidence"`
}

// EnglishCode is the ISO 639-1 code of the pipeline's analysis language.
// Text already in English is never translated.
const EnglishCode = "en"

// TranslationConfidenceThreshold is the minimum language detection confidence
// required before translating; below it the detection is not trusted and the
// raw text is analyzed as-is.
const TranslationConfidenceThreshold = 0.5

// NeedsTranslation reports whether the translation stage should run for the
// detected language.
func (l DetectedLanguage) NeedsTranslation() bool {
	return l.Code != EnglishCode && l.Confidence > TranslationConfidenceThreshold
}

// SentimentAnalysis is the outcome of the sentiment and key-phrase stage.
type SentimentAnalysis struct {
	Sentiment  Sentiment        `json:"sentiment"`
	Scores     ConfidenceScores `json:"confidenceScores"`
	KeyPhrases []string         `json:"keyPhrases"`
}
