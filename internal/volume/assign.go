package volume

import (
	"cmp"

	"github.com/danielkitchener/CBZBinder/internal/manga"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Assign distributes chapter files over the ranges.
//
// A file lands in the first range (in the given order) that contains its number and never
// in a second one. The stop limit is an absolute ceiling, applied on top of the range
// bounds. Files in a volume are ordered by chapter number; equal numbers keep the order of
// files. Volumes without files are left out.
func Assign(files []manga.ChapterFile, ranges []manga.VolumeRange, stop Limit) []manga.VolumeAssignment {
	claimed := make([]bool, len(files))

	var assignments []manga.VolumeAssignment
	for _, volumeRange := range ranges {
		var selected []manga.ChapterFile
		for i, file := range files {
			if claimed[i] || !stop.Allows(file.Number) || !volumeRange.Contains(file.Number) {
				continue
			}
			claimed[i] = true
			selected = append(selected, file)
		}
		if len(selected) == 0 {
			continue
		}

		SortFiles(selected)
		assignments = append(assignments, manga.VolumeAssignment{
			Volume: volumeRange.Volume,
			Range:  volumeRange,
			Files:  selected,
		})
	}
	return assignments
}

// SortFiles orders files by chapter number, keeping the existing order on ties.
func SortFiles(files []manga.ChapterFile) {
	slices.SortStableFunc(files, func(a, b manga.ChapterFile) int {
		return cmp.Compare(a.Number, b.Number)
	})
}

// Unassigned returns the files that no assignment holds, in their original order.
func Unassigned(files []manga.ChapterFile, assignments []manga.VolumeAssignment) []manga.ChapterFile {
	used := make(map[string]struct{})
	for _, assignment := range assignments {
		for _, file := range assignment.Files {
			used[file.Path] = struct{}{}
		}
	}

	return lo.Filter(files, func(file manga.ChapterFile, _ int) bool {
		_, ok := used[file.Path]
		return !ok
	})
}
