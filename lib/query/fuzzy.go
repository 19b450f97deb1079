// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/hostel/lib/schema"
)

// FuzzyResult is the outcome of matching one text against a pattern.
// Positions are rune indices of the matched characters in ascending
// order, for highlighting.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// RankedStudent pairs a student with its fuzzy match.
type RankedStudent struct {
	Student schema.Student
	Match   FuzzyResult
}

var initAlgoOnce sync.Once

// NewSlab returns scratch space for repeated FuzzyMatch calls. A slab
// must not be shared between goroutines.
func NewSlab() *util.Slab {
	return util.MakeSlab(100*1024, 2048)
}

// FuzzyMatch scores text against pattern with fzf's V2 algorithm,
// case-insensitively. It reports false when not every pattern rune
// appears in order. An empty pattern matches everything with score 0.
// slab may be nil.
func FuzzyMatch(text string, pattern string, slab *util.Slab) (FuzzyResult, bool) {
	if pattern == "" {
		return FuzzyResult{}, true
	}
	initAlgoOnce.Do(func() { algo.Init("default") })

	chars := util.ToChars([]byte(strings.ToLower(text)))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, []rune(strings.ToLower(pattern)), true, slab)
	if result.Start < 0 || result.Score <= 0 {
		return FuzzyResult{}, false
	}

	match := FuzzyResult{Score: result.Score}
	if positions != nil {
		match.Positions = slices.Clone(*positions)
		slices.Sort(match.Positions)
	}
	return match, true
}

// FuzzyNames ranks the students whose name fuzzy-matches pattern, best
// score first. Equal scores keep the input order.
func FuzzyNames(students []schema.Student, pattern string) []RankedStudent {
	slab := NewSlab()
	var ranked []RankedStudent
	for _, student := range students {
		match, ok := FuzzyMatch(student.Name, pattern, slab)
		if !ok {
			continue
		}
		ranked = append(ranked, RankedStudent{Student: student, Match: match})
	}
	slices.SortStableFunc(ranked, func(a, b RankedStudent) int {
		return cmp.Compare(b.Match.Score, a.Match.Score)
	})
	return ranked
}
