// backend/internal/ranking/parser.go
package ranking

import (
	"encoding/json"
	"net/url"
	"strings"
)

const (
	competitorScanDepth = 10
	maxCompetitors      = 5
	defaultContext      = "Search result"
)

// Competitor is a domain observed next to the target in one query's results
type Competitor struct {
	Name    string `json:"name"`
	Context string `json:"context"`
}

// RankingOutcome is the result of checking one discovery query
type RankingOutcome struct {
	Query        string       `json:"query"`
	Appears      bool         `json:"appears"`
	Rank         *int         `json:"rank"`
	Competitors  []Competitor `json:"competitors"`
	TotalResults int          `json:"total_results"`
	SearchFailed bool         `json:"search_failed,omitempty"`
}

// SearchResultItem is one entry of the ordered result list
type SearchResultItem struct {
	Type   string `json:"type"`
	Domain string `json:"domain"`
	URL    string `json:"url"`
	Title  string `json:"title"`
}

type serpEnvelope struct {
	Tasks []struct {
		Result []struct {
			ItemsCount int                `json:"items_count"`
			Items      []SearchResultItem `json:"items"`
		} `json:"result"`
	} `json:"tasks"`
}

// NotFound returns an outcome for a query where the target was not located
func NotFound(query string) RankingOutcome {
	return RankingOutcome{
		Query:       query,
		Competitors: []Competitor{},
	}
}

// SearchFailed returns the outcome recorded when the search call itself failed
func SearchFailed(query string) RankingOutcome {
	outcome := NotFound(query)
	outcome.SearchFailed = true
	return outcome
}

// HasResults reports whether the payload carries a result block for its
// first task. Envelopes without one decode as not found.
func HasResults(raw []byte) bool {
	var envelope serpEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return false
	}
	return len(envelope.Tasks) > 0 && len(envelope.Tasks[0].Result) > 0
}

// ParseSearchResults extracts the target's rank and the competing domains
// from a raw organic results payload. It never fails: anything it cannot
// traverse yields a not-found outcome.
func ParseSearchResults(raw []byte, targetWebsite, query string) RankingOutcome {
	var envelope serpEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return NotFound(query)
	}

	targetHost := ""
	if strings.TrimSpace(targetWebsite) != "" {
		host, ok := NormalizeHost(targetWebsite)
		if !ok {
			return NotFound(query)
		}
		targetHost = host
	}

	var items []SearchResultItem
	totalResults := 0
	if len(envelope.Tasks) > 0 && len(envelope.Tasks[0].Result) > 0 {
		items = envelope.Tasks[0].Result[0].Items
		totalResults = envelope.Tasks[0].Result[0].ItemsCount
	}

	outcome := NotFound(query)
	outcome.TotalResults = totalResults

	if targetHost != "" {
		for i, item := range items {
			if matchesTarget(item.Domain, targetHost) {
				rank := i + 1
				outcome.Rank = &rank
				outcome.Appears = true
				break
			}
		}
	}

	scan := items
	if len(scan) > competitorScanDepth {
		scan = scan[:competitorScanDepth]
	}
	for _, item := range scan {
		if targetHost != "" && matchesTarget(item.Domain, targetHost) {
			continue
		}
		name := item.Domain
		if name == "" {
			name = item.URL
		}
		if name == "" {
			continue
		}
		context := item.Title
		if context == "" {
			context = defaultContext
		}
		outcome.Competitors = append(outcome.Competitors, Competitor{Name: name, Context: context})
		if len(outcome.Competitors) == maxCompetitors {
			break
		}
	}

	return outcome
}

// NormalizeHost reduces a website to a bare lowercase hostname without a
// leading "www.". Inputs without a scheme are treated as https.
func NormalizeHost(website string) (string, bool) {
	website = strings.TrimSpace(website)
	lower := strings.ToLower(website)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		website = "https://" + website
	}

	u, err := url.Parse(website)
	if err != nil {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return "", false
	}
	return host, true
}

// matchesTarget applies bidirectional substring containment. Items without
// a domain never match.
func matchesTarget(domain, targetHost string) bool {
	domain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), "www.")
	if domain == "" {
		return false
	}
	return strings.Contains(domain, targetHost) || strings.Contains(targetHost, domain)
}
