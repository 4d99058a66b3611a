// Package series computes dashboard rollups over the act corpus. Pure
// reductions, no I/O.
package series

import (
	"sort"
	"strconv"
	"strings"

	"github.com/vampirenirmal/redline/internal/schema"
)

// EscalationTrend is a coarse placeholder heuristic, not a time-series
// trend: it only reflects the current open-promise load.
type EscalationTrend string

const (
	TrendUp   EscalationTrend = "up"
	TrendFlat EscalationTrend = "flat"
)

// openPromiseTrendThreshold is the load above which a chapter reads as
// escalating.
const openPromiseTrendThreshold = 3

// ChapterRollup aggregates continuity risk for one chapter.
type ChapterRollup struct {
	ChapterID          string          `json:"chapterId"`
	ChapterNumber      int             `json:"chapterNumber"`
	ActCount           int             `json:"actCount"`
	OpenPromises       int             `json:"openPromises"`
	UnresolvedWarnings int             `json:"unresolvedWarnings"`
	EscalationTrend    EscalationTrend `json:"escalationTrend"`
}

// BuildSeriesState groups acts by chapter and sums open promises and
// unresolved warnings per group. Chapters sort by the numeric part of their
// id, falling back to lexicographic order for non-numeric ids. Empty input
// yields an empty list.
func BuildSeriesState(acts []*schema.Act) []ChapterRollup {
	byChapter := make(map[string]*ChapterRollup)
	for _, act := range acts {
		if act == nil {
			continue
		}
		r, ok := byChapter[act.ChapterID]
		if !ok {
			r = &ChapterRollup{
				ChapterID:     act.ChapterID,
				ChapterNumber: chapterNumber(act.ChapterID),
			}
			byChapter[act.ChapterID] = r
		}
		r.ActCount++
		for _, p := range act.Promises {
			if p.Status.IsOpen() {
				r.OpenPromises++
			}
		}
		for _, w := range act.Continuity.Warnings {
			if w.Status == schema.WarningOpen {
				r.UnresolvedWarnings++
			}
		}
	}

	rollups := make([]ChapterRollup, 0, len(byChapter))
	for _, r := range byChapter {
		if r.OpenPromises > openPromiseTrendThreshold {
			r.EscalationTrend = TrendUp
		} else {
			r.EscalationTrend = TrendFlat
		}
		rollups = append(rollups, *r)
	}

	sort.Slice(rollups, func(i, j int) bool {
		a, b := rollups[i], rollups[j]
		if a.ChapterNumber != b.ChapterNumber {
			// Non-numeric ids carry number 0 and group at the front,
			// ordered among themselves by id.
			return a.ChapterNumber < b.ChapterNumber
		}
		return a.ChapterID < b.ChapterID
	})
	return rollups
}

// chapterNumber extracts the numeric component of a chapter id ("ch12" ->
// 12). Zero when the id carries no digits.
func chapterNumber(chapterID string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, chapterID)
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// Totals is the series-wide summary line above the per-chapter table.
type Totals struct {
	Chapters           int `json:"chapters"`
	Acts               int `json:"acts"`
	OpenPromises       int `json:"openPromises"`
	UnresolvedWarnings int `json:"unresolvedWarnings"`
}

// Sum collapses rollups into series totals.
func Sum(rollups []ChapterRollup) Totals {
	t := Totals{Chapters: len(rollups)}
	for _, r := range rollups {
		t.Acts += r.ActCount
		t.OpenPromises += r.OpenPromises
		t.UnresolvedWarnings += r.UnresolvedWarnings
	}
	return t
}
