package ranking

import "sort"

// CompetitorRecord is a competitor deduplicated across queries
type CompetitorRecord struct {
	Name    string `json:"name"`
	Context string `json:"context"`
	Count   int    `json:"count"`
}

// AggregateCompetitors groups observations by exact name, keeps the first
// context seen for each name and returns the five most frequent. Ties keep
// first-seen order.
//
// Names are compared verbatim, so "amazon.com" and "www.amazon.in" stay
// separate records.
func AggregateCompetitors(observations []Competitor) []CompetitorRecord {
	index := make(map[string]int)
	records := make([]CompetitorRecord, 0)

	for _, obs := range observations {
		if i, ok := index[obs.Name]; ok {
			records[i].Count++
			continue
		}
		index[obs.Name] = len(records)
		records = append(records, CompetitorRecord{
			Name:    obs.Name,
			Context: obs.Context,
			Count:   1,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Count > records[j].Count
	})

	if len(records) > maxCompetitors {
		records = records[:maxCompetitors]
	}
	return records
}
