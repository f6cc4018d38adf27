// Package domain defines the core feedback enrichment domain entities and types.
package domain

import (
	"time"
)

// TotalStages is the number of defined enrichment stages.
const TotalStages = 5

// FeedbackItem is the immutable input to the enrichment pipeline.
type FeedbackItem struct {
	FeedbackID   string    `json:"feedbackId"`
	CustomerName string    `json:"customerName"`
	FeedbackText string    `json:"feedbackText"`
	Source       string    `json:"source,omitempty"`
	SubmittedAt  time.Time `json:"submittedAt,omitempty"`
}

// EnrichedFeedback is the feedback item plus all fields accumulated by the
// pipeline stages. Fields are set incrementally; once set during a successful
// run they are never unset.
type EnrichedFeedback struct {
	FeedbackItem

	// Language detection
	DetectedLanguage   string  `json:"detectedLanguage,omitempty"`
	LanguageName       string  `json:"languageName,omitempty"`
	LanguageConfidence float64 `json:"languageConfidence,omitempty"`

	// Translation. TranslatedText is nil when the translation stage was
	// skipped or degraded.
	OriginalText   string  `json:"originalText,omitempty"`
	TranslatedText *string `json:"translatedText"`

	// Sentiment analysis
	SentimentScore         float64          `json:"sentimentScore"`
	SentimentCategory      Sentiment        `json:"sentimentCategory"`
	SentimentCategoryValue int              `json:"sentimentCategoryValue"`
	Priority               Priority         `json:"priority"`
	PriorityValue          int              `json:"priorityValue"`
	KeyPhrases             string           `json:"keyPhrases,omitempty"`
	AIConfidence           ConfidenceScores `json:"aiConfidence,omitempty"`

	// Entity extraction
	Entities      EntityGroups `json:"entities,omitempty"`
	EntitySummary string       `json:"entitySummary,omitempty"`

	// Auto-response
	AutoResponse string `json:"autoResponse,omitempty"`

	// Processing metadata
	ProcessingLog ProcessingLog `json:"processingLog"`
	ProcessedAt   time.Time     `json:"processedAt"`

	// PipelineError is set only on the fallback path; its presence marks the
	// record as a degraded-confidence result for downstream consumers.
	PipelineError string `json:"pipelineError,omitempty"`
}

// ConfidenceScores holds the per-category confidence of a sentiment analysis.
type ConfidenceScores struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// Score returns the confidence for the given sentiment category, defaulting
// to 0.5 for unknown categories.
func (s ConfidenceScores) Score(sentiment Sentiment) float64 {
	switch sentiment {
	case SentimentPositive:
		return s.Positive
	case SentimentNeutral:
		return s.Neutral
	case SentimentNegative:
		return s.Negative
	default:
		return 0.5
	}
}

// StageStatus is the outcome of one attempted pipeline stage.
type StageStatus string

const (
	StageStatusSuccess StageStatus = "Success"
	StageStatusSkipped StageStatus = "Skipped"
	StageStatusFailed  StageStatus = "Failed"
)

// StageRecord is one entry in the processing log. Result carries a summarized
// payload, not the full stage output, to bound log size.
type StageRecord struct {
	Stage     int         `json:"stage"`
	Name      string      `json:"name"`
	Status    StageStatus `json:"status"`
	Result    any         `json:"result,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ProcessingLog is the append-only audit trail of a pipeline run, one record
// per attempted stage in execution order.
type ProcessingLog struct {
	StartTime        time.Time     `json:"startTime"`
	EndTime          time.Time     `json:"endTime,omitempty"`
	Stages           []StageRecord `json:"stages"`
	TotalStages      int           `json:"totalStages,omitempty"`
	SuccessfulStages int           `json:"successfulStages,omitempty"`
}

// Append adds a stage record to the log.
func (l *ProcessingLog) Append(record StageRecord) {
	l.Stages = append(l.Stages, record)
}

// Finish stamps the end time and success counters.
func (l *ProcessingLog) Finish(now time.Time) {
	l.EndTime = now
	l.TotalStages = TotalStages
	l.SuccessfulStages = 0
	for _, record := range l.Stages {
		if record.Status == StageStatusSuccess {
			l.SuccessfulStages++
		}
	}
}
