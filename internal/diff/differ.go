// Package diff reconciles two snapshots by content hash. Classifying by
// hash rather than name distinguishes a pure rename (same bytes, new name)
// from a delete+add, which name- or mtime-keyed comparison cannot.
package diff

import (
	"fmt"
	"sort"

	"dirsync/internal/snapshot"
)

type ChangeKind string

const (
	Added   ChangeKind = "ADDED"
	Renamed ChangeKind = "RENAMED"
	Removed ChangeKind = "REMOVED"
)

// Rename records a file whose content appears in both snapshots under
// different names. From is the comparison-side name, To the reference-side
// name.
type Rename struct {
	From string
	To   string
	Hash string
}

// Result partitions every difference between a reference snapshot (A) and a
// comparison snapshot (B). Entries keep the enumeration order of the
// snapshot they came from. Immutable once returned by Diff.
type Result struct {
	Added   []snapshot.FileRecord // hash present only in the comparison (B)
	Renamed []Rename              // hash in both, names differ
	Removed []snapshot.FileRecord // hash present only in the reference (A)

	UniqueToReference  []string // names of Removed entries
	UniqueToComparison []string // names of Added entries
}

func (r *Result) HasChanges() bool {
	return len(r.Added) > 0 || len(r.Renamed) > 0 || len(r.Removed) > 0
}

// Diff classifies every record of both snapshots in two linear passes over
// two hash->name indexes. Pure computation: no I/O, no errors on validated
// snapshots.
func Diff(reference, comparison *snapshot.Snapshot) *Result {
	indexA := hashIndex(reference)
	indexB := hashIndex(comparison)

	result := &Result{
		Added:   make([]snapshot.FileRecord, 0),
		Renamed: make([]Rename, 0),
		Removed: make([]snapshot.FileRecord, 0),
	}

	for _, rec := range comparison.Records {
		nameA, ok := indexA[rec.Hash]
		switch {
		case !ok:
			result.Added = append(result.Added, rec)
			result.UniqueToComparison = append(result.UniqueToComparison, rec.Name)
		case nameA != rec.Name:
			result.Renamed = append(result.Renamed, Rename{
				From: rec.Name,
				To:   nameA,
				Hash: rec.Hash,
			})
		}
	}

	for _, rec := range reference.Records {
		if _, ok := indexB[rec.Hash]; !ok {
			result.Removed = append(result.Removed, rec)
			result.UniqueToReference = append(result.UniqueToReference, rec.Name)
		}
	}

	return result
}

// hashIndex maps each content hash to a representative name. When two
// records in one snapshot share a hash, the last one in enumeration order
// wins; duplicate-content files thus collapse to a single index entry.
func hashIndex(s *snapshot.Snapshot) map[string]string {
	index := make(map[string]string, len(s.Records))
	for _, rec := range s.Records {
		index[rec.Hash] = rec.Name
	}
	return index
}

// FormatReport renders a result for terminal output, sorted by name within
// each class for stable display.
func FormatReport(result *Result) string {
	if !result.HasChanges() {
		return "No differences detected."
	}

	report := "Differences detected:\n\n"

	if len(result.Added) > 0 {
		added := sortedRecords(result.Added)
		report += fmt.Sprintf("%s (%d files, only in comparison):\n", Added, len(added))
		for _, rec := range added {
			report += fmt.Sprintf("  + %s (hash: %s)\n", rec.Name, rec.Hash)
		}
		report += "\n"
	}

	if len(result.Renamed) > 0 {
		renamed := make([]Rename, len(result.Renamed))
		copy(renamed, result.Renamed)
		sort.Slice(renamed, func(i, j int) bool { return renamed[i].From < renamed[j].From })
		report += fmt.Sprintf("%s (%d files):\n", Renamed, len(renamed))
		for _, ren := range renamed {
			report += fmt.Sprintf("  ~ %s -> %s (hash: %s)\n", ren.From, ren.To, ren.Hash)
		}
		report += "\n"
	}

	if len(result.Removed) > 0 {
		removed := sortedRecords(result.Removed)
		report += fmt.Sprintf("%s (%d files, only in reference):\n", Removed, len(removed))
		for _, rec := range removed {
			report += fmt.Sprintf("  - %s (hash: %s)\n", rec.Name, rec.Hash)
		}
		report += "\n"
	}

	report += fmt.Sprintf("Summary: %d added, %d renamed, %d removed\n",
		len(result.Added), len(result.Renamed), len(result.Removed))

	return report
}

func sortedRecords(records []snapshot.FileRecord) []snapshot.FileRecord {
	out := make([]snapshot.FileRecord, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
