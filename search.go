package main

import (
	"path/filepath"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// searchImages finds the list entry whose base name best matches query.
// Exact, prefix and substring matches win in that order before falling
// back to fuzzy ranking. Returns -1 when nothing matches.
func searchImages(paths []string, query string) int {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || len(paths) == 0 {
		return -1
	}

	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = filepath.Base(path)
	}

	for i, name := range names {
		if strings.EqualFold(name, trimmed) {
			return i
		}
	}
	lower := strings.ToLower(trimmed)
	for i, name := range names {
		if strings.HasPrefix(strings.ToLower(name), lower) {
			return i
		}
	}
	for i, name := range names {
		if strings.Contains(strings.ToLower(name), lower) {
			return i
		}
	}

	ranks := fuzzy.RankFindNormalizedFold(trimmed, names)
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
			continue
		}
		if rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex {
			best = rank
		}
	}
	return best.OriginalIndex
}
