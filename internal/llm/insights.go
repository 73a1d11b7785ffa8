package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/brandlens/ai-visibility/backend/internal/insight"
)

// InsightService asks the configured model for a structured company insight
type InsightService struct {
	completer Completer
	logger    *logrus.Logger
}

func NewInsightService(completer Completer, logger *logrus.Logger) *InsightService {
	return &InsightService{completer: completer, logger: logger}
}

// GetInsights returns the model's raw reply with any markdown fences
// removed. The text is not guaranteed to be valid JSON.
func (s *InsightService) GetInsights(ctx context.Context, companyName, website string) (string, error) {
	if s.completer == nil {
		return "", ErrNotConfigured
	}

	start := time.Now()
	s.logger.WithFields(logrus.Fields{
		"company": companyName,
		"website": website,
	}).Info("Requesting AI insights")

	reply, err := s.completer.Complete(ctx, insightSystemPrompt, buildInsightPrompt(companyName, website))
	if err != nil {
		s.logger.WithError(err).WithField("company", companyName).Warn("AI insights request failed")
		return "", fmt.Errorf("insights request failed: %w", err)
	}

	text := insight.CleanJSONBlock(reply)
	s.logger.WithFields(logrus.Fields{
		"company":  companyName,
		"length":   len(text),
		"duration": time.Since(start).String(),
	}).Debug("AI insights received")

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("insights request returned empty text")
	}
	return text, nil
}
