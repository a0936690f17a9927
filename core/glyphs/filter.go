package glyphs

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Filter returns the records which pass a category filter and a free-text
// query, in their original order. Filter never modifies records.
//
// Category CategoryAll lets every record pass, any other value requires an
// exact match. Unknown categories simply match nothing.
//
// The query is applied after the category filter. A record is kept if its
// character, its unicode label or its name contains the query, ignoring case.
// An empty query keeps every record. Queries are normalized to NFC first.
func Filter(records []Record, category Category, query string) []Record {
	query = norm.NFC.String(query)
	lquery := strings.ToLower(query)
	result := make([]Record, 0, len(records))
	for _, rec := range records {
		if category != CategoryAll && rec.Category != category {
			continue
		}
		if query != "" && !matchesQuery(rec, query, lquery) {
			continue
		}
		result = append(result, rec)
	}
	return result
}

func matchesQuery(rec Record, query, lquery string) bool {
	if strings.Contains(rec.Character, query) || strings.Contains(strings.ToLower(rec.Character), lquery) {
		return true
	}
	if strings.Contains(strings.ToLower(rec.Unicode), lquery) {
		return true
	}
	return rec.Name != "" && strings.Contains(strings.ToLower(rec.Name), lquery)
}
