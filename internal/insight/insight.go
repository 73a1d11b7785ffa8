// Package insight decodes the company insight an LLM returns and fills in
// defaults for whatever it left out.
package insight

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/brandlens/ai-visibility/backend/internal/models"
)

// ErrNotObject is returned when the text is not a JSON object
var ErrNotObject = errors.New("insight is not a JSON object")

// Insight is the LLM's view of a company. Every field is optional: an empty
// string, nil slice or nil pointer means the model did not provide it.
type Insight struct {
	Overview         string                  `json:"overview"`
	Industry         string                  `json:"industry"`
	MarketType       string                  `json:"market_type"`
	Location         string                  `json:"location"`
	CategoryQueries  []string                `json:"category_queries"`
	VisibilityLevel  string                  `json:"visibility_level"`
	OverallSentiment string                  `json:"overall_sentiment"`
	InformationDepth string                  `json:"information_depth"`
	PositiveDrivers  []string                `json:"positive_drivers"`
	NegativeDrivers  []string                `json:"negative_drivers"`
	SentimentThemes  *models.SentimentThemes `json:"sentiment_themes"`
	AIKnowledge      *models.AIKnowledge     `json:"ai_knowledge"`
	Competitors      *models.CompetitorLists `json:"competitors"`
	Recommendations  []models.Recommendation `json:"recommendations"`

	// Raw is the compacted JSON object the insight was decoded from
	Raw json.RawMessage `json:"-"`
	// Issues lists top-level fields that were present but had the wrong shape
	Issues []string `json:"-"`
}

// Parse decodes LLM output into an Insight. Markdown code fences are
// stripped first. Each top-level field is decoded on its own so that one
// malformed field does not discard the rest; the offending keys are
// recorded in Issues.
func Parse(text string) (*Insight, error) {
	cleaned := CleanJSONBlock(text)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, fmt.Errorf("failed to parse insight: %w", err)
	}
	if fields == nil {
		return nil, ErrNotObject
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(cleaned)); err != nil {
		return nil, fmt.Errorf("failed to compact insight: %w", err)
	}

	in := &Insight{Raw: json.RawMessage(compact.Bytes())}

	targets := map[string]interface{}{
		"overview":          &in.Overview,
		"industry":          &in.Industry,
		"market_type":       &in.MarketType,
		"location":          &in.Location,
		"category_queries":  &in.CategoryQueries,
		"visibility_level":  &in.VisibilityLevel,
		"overall_sentiment": &in.OverallSentiment,
		"information_depth": &in.InformationDepth,
		"positive_drivers":  &in.PositiveDrivers,
		"negative_drivers":  &in.NegativeDrivers,
		"sentiment_themes":  &in.SentimentThemes,
		"ai_knowledge":      &in.AIKnowledge,
		"competitors":       &in.Competitors,
		"recommendations":   &in.Recommendations,
	}

	for key, target := range targets {
		value, ok := fields[key]
		if !ok || isNull(value) {
			continue
		}
		if err := decodeInto(value, target); err != nil {
			in.Issues = append(in.Issues, key)
		}
	}
	sort.Strings(in.Issues)

	in.CategoryQueries = compactStrings(in.CategoryQueries)
	return in, nil
}

// CleanJSONBlock removes markdown code block wrappers from JSON
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// decodeInto unmarshals into a fresh value and only assigns it on success,
// so a failed decode leaves the target untouched.
func decodeInto(data json.RawMessage, target interface{}) error {
	ptr := reflect.ValueOf(target)
	fresh := reflect.New(ptr.Elem().Type())
	if err := json.Unmarshal(data, fresh.Interface()); err != nil {
		return err
	}
	ptr.Elem().Set(fresh.Elem())
	return nil
}

func isNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

func compactStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
