package domain

import (
	"strings"
)

// Sentiment is the closed set of sentiment categories.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// sentimentValues maps each category to its CRM option-set numeric code.
// The mapping is exhaustive over the closed enumeration.
var sentimentValues = map[Sentiment]int{
	SentimentPositive: 100000000,
	SentimentNeutral:  100000001,
	SentimentNegative: 100000002,
}

// ParseSentiment maps a lowercase service-side label onto the closed
// enumeration, defaulting to Neutral for unrecognized labels.
func ParseSentiment(label string) Sentiment {
	switch strings.ToLower(label) {
	case "positive":
		return SentimentPositive
	case "negative":
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// Value returns the CRM option-set code for the sentiment category.
func (s Sentiment) Value() int {
	if v, ok := sentimentValues[s]; ok {
		return v
	}
	return sentimentValues[SentimentNeutral]
}

// Priority is the closed set of derived priorities.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// priorityValues maps each priority to its CRM option-set numeric code.
var priorityValues = map[Priority]int{
	PriorityLow:      100000000,
	PriorityMedium:   100000001,
	PriorityHigh:     100000002,
	PriorityCritical: 100000003,
}

// Value returns the CRM option-set code for the priority.
func (p Priority) Value() int {
	if v, ok := priorityValues[p]; ok {
		return v
	}
	return priorityValues[PriorityMedium]
}

// DerivePriority computes the priority from a sentiment category and its
// confidence score. The decision table is evaluated top to bottom, first
// match wins:
//
//	Negative with confidence > 0.7  -> Critical
//	Negative otherwise              -> High
//	Positive with confidence > 0.8  -> Low
//	otherwise                       -> Medium
func DerivePriority(sentiment Sentiment, confidence float64) Priority {
	switch {
	case sentiment == SentimentNegative && confidence > 0.7:
		return PriorityCritical
	case sentiment == SentimentNegative:
		return PriorityHigh
	case sentiment == SentimentPositive && confidence > 0.8:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Fixed lexicons for the local fallback heuristic.
var (
	positiveWords = []string{
		"great", "excellent", "amazing", "love", "fantastic",
		"wonderful", "awesome", "super", "useful", "helpful",
	}
	negativeWords = []string{
		"bad", "terrible", "awful", "hate", "worst",
		"poor", "disappointed", "frustrated", "angry", "useless",
	}
)

// FallbackSentiment computes a deterministic local sentiment from keyword
// counts over the two fixed lexicons. Majority count wins; ties default to
// Neutral. Scores are fixed at 0.75/0.25/0.50 for Positive/Negative/Neutral.
func FallbackSentiment(text string) (Sentiment, float64) {
	lower := strings.ToLower(text)

	var positiveCount, negativeCount int
	for _, word := range positiveWords {
		if strings.Contains(lower, word) {
			positiveCount++
		}
	}
	for _, word := range negativeWords {
		if strings.Contains(lower, word) {
			negativeCount++
		}
	}

	switch {
	case positiveCount > negativeCount:
		return SentimentPositive, 0.75
	case negativeCount > positiveCount:
		return SentimentNegative, 0.25
	default:
		return SentimentNeutral, 0.50
	}
}
