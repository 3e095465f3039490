package stats

import (
	"sort"

	"wurdlurnur/internal/model"
)

type WordCount struct {
	Word  string
	Count int
}

// MostFailed returns up to n words with the most failed past sessions.
func MostFailed(records []model.WordRecord, n int) []WordCount {
	failCount := make(map[string]int)
	for _, rec := range records {
		for _, h := range rec.History {
			if h.Result == model.Fail {
				failCount[rec.Word] += 1
			}
		}
	}
	var pairs []WordCount
	for w, c := range failCount {
		pairs = append(pairs, WordCount{Word: w, Count: c})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Count != pairs[j].Count {
			return pairs[i].Count > pairs[j].Count
		}
		return pairs[i].Word < pairs[j].Word
	})
	if len(pairs) > n {
		return pairs[:n]
	}
	return pairs
}

// PassRate is the share of past pass/fail results that were passes, or 0
// with no history.
func PassRate(records []model.WordRecord) float64 {
	passes, total := 0, 0
	for _, rec := range records {
		for _, h := range rec.History {
			total++
			if h.Result == model.Pass {
				passes++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(passes) / float64(total)
}
