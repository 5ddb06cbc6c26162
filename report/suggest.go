package report

import (
	"slices"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/wippyai/glinspect/catalog"
	"github.com/wippyai/glinspect/inspector"
)

// MinSimilarity is the lowest Levenshtein similarity a suggestion needs.
const MinSimilarity = 0.5

// Suggest returns up to n collected resource names of iface that resemble
// name, most similar first.
func Suggest(insp *inspector.Inspector, iface catalog.Interface, name string, n int) []string {
	entries, err := insp.Container(iface)
	if err != nil || n <= 0 {
		return nil
	}

	type scored struct {
		name  string
		score float64
	}
	lev := metrics.NewLevenshtein()
	lev.CaseSensitive = false

	var found []scored
	for _, e := range entries {
		candidate := e.Base().Name
		if candidate == "" || candidate == name {
			continue
		}
		if s := strutil.Similarity(name, candidate, lev); s >= MinSimilarity {
			found = append(found, scored{name: candidate, score: s})
		}
	}
	slices.SortStableFunc(found, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		}
		return strings.Compare(a.name, b.name)
	})

	out := make([]string, 0, min(n, len(found)))
	for _, s := range found[:min(n, len(found))] {
		out = append(out, s.name)
	}
	return out
}
