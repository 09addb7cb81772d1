package main

import (
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// Sort method constants
const (
	SortLexicographic = 0 // Case-insensitive lexicographic order (default)
	SortNatural       = 1 // Natural order (file2 before file10)
	SortEntryOrder    = 2 // Keep enumeration order (no sort)
)

// SortStrategy defines the interface for file list ordering
type SortStrategy interface {
	// Sort returns a new sorted slice without modifying the original
	Sort(paths []string) []string
	// Name returns the human-readable name of the strategy
	Name() string
	// ID returns the numeric identifier of the strategy
	ID() int
}

func copyPaths(paths []string) []string {
	result := make([]string, len(paths))
	copy(result, paths)
	return result
}

// LexicographicSortStrategy sorts case-insensitively by full path, falling
// back to the exact path on case-only ties so the order stays deterministic.
type LexicographicSortStrategy struct{}

func (s *LexicographicSortStrategy) Sort(paths []string) []string {
	result := copyPaths(paths)
	sort.Slice(result, func(i, j int) bool {
		li, lj := strings.ToLower(result[i]), strings.ToLower(result[j])
		if li != lj {
			return li < lj
		}
		return result[i] < result[j]
	})
	return result
}

func (s *LexicographicSortStrategy) Name() string {
	return "Lexicographic"
}

func (s *LexicographicSortStrategy) ID() int {
	return SortLexicographic
}

// NaturalSortStrategy sorts with embedded numbers compared numerically
type NaturalSortStrategy struct{}

func (s *NaturalSortStrategy) Sort(paths []string) []string {
	result := copyPaths(paths)
	sort.Slice(result, func(i, j int) bool {
		return natural.Less(strings.ToLower(result[i]), strings.ToLower(result[j]))
	})
	return result
}

func (s *NaturalSortStrategy) Name() string {
	return "Natural"
}

func (s *NaturalSortStrategy) ID() int {
	return SortNatural
}

// EntryOrderSortStrategy preserves the original order
type EntryOrderSortStrategy struct{}

func (s *EntryOrderSortStrategy) Sort(paths []string) []string {
	return copyPaths(paths)
}

func (s *EntryOrderSortStrategy) Name() string {
	return "Entry Order"
}

func (s *EntryOrderSortStrategy) ID() int {
	return SortEntryOrder
}

// GetSortStrategy returns the strategy for a sort method ID
func GetSortStrategy(sortMethod int) SortStrategy {
	switch sortMethod {
	case SortNatural:
		return &NaturalSortStrategy{}
	case SortEntryOrder:
		return &EntryOrderSortStrategy{}
	default:
		return &LexicographicSortStrategy{}
	}
}

// GetAllSortStrategies returns all available sort strategies
func GetAllSortStrategies() []SortStrategy {
	return []SortStrategy{
		&LexicographicSortStrategy{},
		&NaturalSortStrategy{},
		&EntryOrderSortStrategy{},
	}
}
