package binder

import (
	"github.com/danielkitchener/CBZBinder/internal/cbz"
	"github.com/danielkitchener/CBZBinder/internal/manga"
	"github.com/danielkitchener/CBZBinder/internal/volume"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Plan is the outcome of scanning a folder and assigning its chapters to volumes.
type Plan struct {
	Ranges      []manga.VolumeRange
	Assignments []manga.VolumeAssignment
	// Unassigned holds scanned chapters that fall in no volume.
	Unassigned []manga.ChapterFile
	Scanned    int
}

// Chapters counts the chapters placed in a volume.
func (p *Plan) Chapters() int {
	return lo.SumBy(p.Assignments, func(assignment manga.VolumeAssignment) int {
		return len(assignment.Files)
	})
}

// NewPlan scans the folder and assigns its chapters to the declared volumes.
// Volumes without chapters are not part of the assignments.
func NewPlan(options *Options) (*Plan, error) {
	if err := validateDirectory(options.Directory); err != nil {
		return nil, err
	}

	files, err := cbz.ScanDirectory(options.Directory, options.Prefix)
	if err != nil {
		return nil, err
	}

	ranges := volume.Resolve(options.Volumes, options.Stop)
	assignments := volume.Assign(files, ranges, options.Stop)
	plan := &Plan{
		Ranges:      ranges,
		Assignments: assignments,
		Unassigned:  volume.Unassigned(files, assignments),
		Scanned:     len(files),
	}

	log.Debug().
		Str("directory", options.Directory).
		Int("scanned", plan.Scanned).
		Int("volumes", len(plan.Assignments)).
		Int("unassigned", len(plan.Unassigned)).
		Msg("Plan computed")
	return plan, nil
}
