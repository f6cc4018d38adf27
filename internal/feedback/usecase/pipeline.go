// Package usecase implements the feedback enrichment pipeline: five fixed
// stages folded over a feedback item, a per-stage audit trail, and a
// guaranteed locally-computed fallback record when enrichment cannot
// complete. Process always produces a publishable record.
package usecase

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	apperrors "github.com/apexclaims/feedback/internal/errors"
	"github.com/apexclaims/feedback/internal/feedback/domain"
	"github.com/apexclaims/feedback/internal/metrics"
)

// Stage backends. Each maps to one enrichment stage; implementations live in
// the cognitive package.
type (
	// LanguageDetector detects the dominant language of a text.
	LanguageDetector interface {
		DetectLanguage(ctx context.Context, text string) (domain.DetectedLanguage, error)
	}

	// Translator translates text from the given source language into English.
	Translator interface {
		Translate(ctx context.Context, text, fromLanguage string) (string, error)
	}

	// SentimentAnalyzer analyzes sentiment and key phrases of a text.
	SentimentAnalyzer interface {
		AnalyzeSentiment(ctx context.Context, text string) (domain.SentimentAnalysis, error)
	}

	// EntityExtractor extracts named entities grouped by category.
	EntityExtractor interface {
		ExtractEntities(ctx context.Context, text string) (domain.EntityGroups, error)
	}

	// ResponseGenerator generates a customer-facing reply. Configured reports
	// whether a generation backend is available; when it is not, the pipeline
	// falls back to fixed templates without calling GenerateResponse.
	ResponseGenerator interface {
		Configured() bool
		GenerateResponse(ctx context.Context, customerName, text string, sentiment domain.Sentiment, entities domain.EntityGroups) (string, error)
	}

	// Publisher delivers one analyzed feedback record downstream.
	Publisher interface {
		Publish(ctx context.Context, enriched *domain.EnrichedFeedback) error
	}
)

// Stage indices and names as they appear in the processing log. Index 0 is
// reserved for the pipeline-failure record on the fallback path.
const (
	stageLanguageDetection = 1
	stageTranslation       = 2
	stageSentiment         = 3
	stageEntities          = 4
	stageAutoResponse      = 5

	stageNameLanguageDetection = "Language Detection"
	stageNameTranslation       = "Translation"
	stageNameSentiment         = "Sentiment Analysis"
	stageNameEntities          = "Entity Extraction"
	stageNameAutoResponse      = "Auto-Response Generation"

	pipelineFailureName = "Pipeline Failure"
)

// Pipeline runs the five enrichment stages over incoming feedback and
// publishes the result. A stage failure aborts the remaining stages and
// produces a degraded fallback record instead; publishing happens exactly
// once per Process call either way.
type Pipeline struct {
	detector   LanguageDetector
	translator Translator
	analyzer   SentimentAnalyzer
	extractor  EntityExtractor
	generator  ResponseGenerator
	publisher  Publisher
	business   metrics.BusinessMetrics
	logger     *slog.Logger
	now        func() time.Time
}

// NewPipeline creates a Pipeline with the given stage backends.
func NewPipeline(
	detector LanguageDetector,
	translator Translator,
	analyzer SentimentAnalyzer,
	extractor EntityExtractor,
	generator ResponseGenerator,
	publisher Publisher,
	business metrics.BusinessMetrics,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		detector:   detector,
		translator: translator,
		analyzer:   analyzer,
		extractor:  extractor,
		generator:  generator,
		publisher:  publisher,
		business:   business,
		logger:     logger,
		now:        time.Now,
	}
}

// Process enriches one feedback item and publishes the result. It always
// returns a record: on any stage failure the record is the keyword-heuristic
// fallback with PipelineError set. The returned error is non-nil only when
// publishing fails.
func (p *Pipeline) Process(ctx context.Context, item domain.FeedbackItem) (*domain.EnrichedFeedback, error) {
	start := p.now()
	log := &domain.ProcessingLog{StartTime: start}

	enriched, err := p.runStages(ctx, item, log)
	status := "success"
	if err != nil {
		status = "fallback"
		if p.logger != nil {
			p.logger.Error("pipeline failed, producing fallback record",
				slog.String("feedback_id", item.FeedbackID),
				slog.String("error", err.Error()),
			)
		}
		enriched = p.fallback(ctx, item, log, err)
	}

	if p.business != nil {
		p.business.RecordOperation(ctx, "feedback", "pipeline_process", status)
		p.business.RecordDuration(ctx, "feedback", "pipeline_process", p.now().Sub(start), status)
	}

	if p.logger != nil {
		p.logger.Info("feedback processed",
			slog.String("feedback_id", item.FeedbackID),
			slog.String("sentiment", string(enriched.SentimentCategory)),
			slog.String("priority", string(enriched.Priority)),
			slog.String("status", status),
		)
	}

	if err := p.publisher.Publish(ctx, enriched); err != nil {
		return enriched, apperrors.Wrap(err, "publish analyzed feedback")
	}
	return enriched, nil
}

func (p *Pipeline) runStages(ctx context.Context, item domain.FeedbackItem, log *domain.ProcessingLog) (*domain.EnrichedFeedback, error) {
	enriched := &domain.EnrichedFeedback{FeedbackItem: item}
	textToAnalyze := item.FeedbackText

	// Stage 1: language detection.
	detected, err := p.detector.DetectLanguage(ctx, item.FeedbackText)
	if err != nil {
		p.record(ctx, log, stageLanguageDetection, stageNameLanguageDetection, domain.StageStatusFailed, nil, err)
		return nil, err
	}
	enriched.DetectedLanguage = detected.Code
	enriched.LanguageName = detected.Name
	enriched.LanguageConfidence = detected.Confidence
	p.record(ctx, log, stageLanguageDetection, stageNameLanguageDetection, domain.StageStatusSuccess, detected, nil)

	// Stage 2: translation. Conditional on detected language, and the one
	// stage that swallows its own remote error: a failed translation degrades
	// to analyzing the original text instead of failing the pipeline.
	enriched.OriginalText = item.FeedbackText
	if !detected.NeedsTranslation() {
		p.record(ctx, log, stageTranslation, stageNameTranslation, domain.StageStatusSkipped,
			map[string]any{"reason": "Already in English"}, nil)
	} else if translated, err := p.translator.Translate(ctx, item.FeedbackText, detected.Code); err != nil {
		if p.logger != nil {
			p.logger.Warn("translation failed, analyzing original text",
				slog.String("feedback_id", item.FeedbackID),
				slog.String("language", detected.Code),
				slog.String("error", err.Error()),
			)
		}
		p.record(ctx, log, stageTranslation, stageNameTranslation, domain.StageStatusSuccess,
			map[string]any{"from": detected.Code, "to": detected.Code, "translated": false}, nil)
	} else {
		enriched.TranslatedText = &translated
		textToAnalyze = translated
		p.record(ctx, log, stageTranslation, stageNameTranslation, domain.StageStatusSuccess,
			map[string]any{"from": detected.Code, "to": domain.EnglishCode, "translated": true}, nil)
	}

	// Stage 3: sentiment and key phrases, plus priority derivation.
	analysis, err := p.analyzer.AnalyzeSentiment(ctx, textToAnalyze)
	if err != nil {
		p.record(ctx, log, stageSentiment, stageNameSentiment, domain.StageStatusFailed, nil, err)
		return nil, err
	}
	confidence := analysis.Scores.Score(analysis.Sentiment)
	priority := domain.DerivePriority(analysis.Sentiment, confidence)
	enriched.SentimentScore = math.Round(confidence*100) / 100
	enriched.SentimentCategory = analysis.Sentiment
	enriched.SentimentCategoryValue = analysis.Sentiment.Value()
	enriched.Priority = priority
	enriched.PriorityValue = priority.Value()
	enriched.KeyPhrases = strings.Join(analysis.KeyPhrases, ", ")
	enriched.AIConfidence = analysis.Scores
	p.record(ctx, log, stageSentiment, stageNameSentiment, domain.StageStatusSuccess,
		map[string]any{"sentiment": analysis.Sentiment, "confidence": confidence, "priority": priority}, nil)

	// Stage 4: entity extraction.
	entities, err := p.extractor.ExtractEntities(ctx, textToAnalyze)
	if err != nil {
		p.record(ctx, log, stageEntities, stageNameEntities, domain.StageStatusFailed, nil, err)
		return nil, err
	}
	enriched.Entities = entities
	enriched.EntitySummary = entities.Summary()
	p.record(ctx, log, stageEntities, stageNameEntities, domain.StageStatusSuccess,
		map[string]any{"summary": enriched.EntitySummary, "totalCount": entities.Count()}, nil)

	// Stage 5: auto-response. Never fails: an unconfigured or failing
	// generator falls back to the fixed templates.
	response := p.autoResponse(ctx, item.CustomerName, textToAnalyze, analysis.Sentiment, entities)
	enriched.AutoResponse = response
	p.record(ctx, log, stageAutoResponse, stageNameAutoResponse, domain.StageStatusSuccess,
		map[string]any{"responseLength": len(response)}, nil)

	log.Finish(p.now())
	enriched.ProcessingLog = *log
	enriched.ProcessedAt = p.now()

	return enriched, nil
}

// autoResponse produces the customer reply, preferring the generation backend
// and degrading to the fixed sentiment templates.
func (p *Pipeline) autoResponse(ctx context.Context, customerName, text string, sentiment domain.Sentiment, entities domain.EntityGroups) string {
	if p.generator == nil || !p.generator.Configured() {
		return domain.TemplateResponse(customerName, sentiment)
	}

	response, err := p.generator.GenerateResponse(ctx, customerName, text, sentiment, entities)
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("response generation failed, using template",
				slog.String("error", err.Error()),
			)
		}
		return domain.TemplateResponse(customerName, sentiment)
	}
	return response
}

// fallback builds the degraded record for a failed pipeline run: heuristic
// sentiment, Medium priority, the partial processing log, and the pipeline
// error annotation that marks the record as degraded for consumers.
func (p *Pipeline) fallback(ctx context.Context, item domain.FeedbackItem, log *domain.ProcessingLog, cause error) *domain.EnrichedFeedback {
	p.record(ctx, log, 0, pipelineFailureName, domain.StageStatusFailed, nil, cause)
	log.Finish(p.now())

	sentiment, score := domain.FallbackSentiment(item.FeedbackText)
	return &domain.EnrichedFeedback{
		FeedbackItem:           item,
		SentimentScore:         score,
		SentimentCategory:      sentiment,
		SentimentCategoryValue: sentiment.Value(),
		Priority:               domain.PriorityMedium,
		PriorityValue:          domain.PriorityMedium.Value(),
		ProcessingLog:          *log,
		ProcessedAt:            p.now(),
		PipelineError:          cause.Error(),
	}
}

// record appends one stage record to the log and counts it.
func (p *Pipeline) record(ctx context.Context, log *domain.ProcessingLog, stage int, name string, status domain.StageStatus, result any, stageErr error) {
	rec := domain.StageRecord{
		Stage:     stage,
		Name:      name,
		Status:    status,
		Result:    result,
		Timestamp: p.now(),
	}
	if stageErr != nil {
		rec.Error = stageErr.Error()
	}
	log.Append(rec)

	if p.business != nil {
		p.business.RecordStage(ctx, name, strings.ToLower(string(status)))
	}
}
