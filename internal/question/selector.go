package question

import "math/rand/v2"

// Paginate returns the page-th window of PageSize questions together with the
// size of the full set. Pages past the end yield an empty slice. Pages below 1
// are treated as the first page.
func Paginate(questions []Question, page int) ([]Question, int) {
	total := len(questions)
	if page < 1 {
		page = 1
	}
	if page > total/PageSize+1 {
		return []Question{}, total
	}
	offset := (page - 1) * PageSize
	if offset >= total {
		return []Question{}, total
	}
	end := min(offset+PageSize, total)
	return questions[offset:end], total
}

// StorageCategoryID translates a zero-based client category id into the
// one-based id used by the store.
func StorageCategoryID(externalID int) int64 {
	return int64(externalID) + CategoryIDOffset
}

// Exclude drops every question whose id appears in excluded, keeping order.
func Exclude(pool []Question, excluded []int64) []Question {
	if len(excluded) == 0 {
		return pool
	}
	seen := make(map[int64]struct{}, len(excluded))
	for _, id := range excluded {
		seen[id] = struct{}{}
	}
	remaining := make([]Question, 0, len(pool))
	for _, q := range pool {
		if _, skip := seen[q.ID]; !skip {
			remaining = append(remaining, q)
		}
	}
	return remaining
}

// Pick selects one question uniformly at random using picker.
func Pick(candidates []Question, picker Picker) (Question, bool) {
	if len(candidates) == 0 {
		return Question{}, false
	}
	return candidates[picker.IntN(len(candidates))], true
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

// DefaultPicker draws from the process-wide math/rand/v2 source, which is
// safe for concurrent use.
var DefaultPicker Picker = globalPicker{}
