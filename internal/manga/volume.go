package manga

import "math"

// VolumeDefinition is one user-declared row: a volume and the chapter it starts at.
type VolumeDefinition struct {
	Volume       int     `json:"volume"`
	StartChapter float64 `json:"start_chapter"`
}

// VolumeRange is the half-open chapter interval [Start, End) covered by a volume.
type VolumeRange struct {
	Volume int     `json:"volume"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
}

// Contains reports whether a chapter number falls inside the range.
func (r VolumeRange) Contains(number float64) bool {
	return number >= r.Start && number < r.End
}

// Unbounded reports whether the range has no upper chapter limit.
func (r VolumeRange) Unbounded() bool {
	return math.IsInf(r.End, 1)
}

// VolumeAssignment is the ordered list of chapter files that make up one volume.
type VolumeAssignment struct {
	Volume int           `json:"volume"`
	Range  VolumeRange   `json:"range"`
	Files  []ChapterFile `json:"files"`
}
