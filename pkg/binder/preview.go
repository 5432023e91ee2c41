package binder

import (
	"github.com/danielkitchener/CBZBinder/internal/cbz"
	"github.com/danielkitchener/CBZBinder/internal/manga"
	"github.com/danielkitchener/CBZBinder/internal/volume"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// ChapterPreview lists the pages one chapter would contribute to a volume.
type ChapterPreview struct {
	File  manga.ChapterFile
	Pages []string
	// Err is set when the chapter archive could not be listed.
	Err error
}

// PreviewResult is what a single volume would contain.
type PreviewResult struct {
	Volume     int
	Range      manga.VolumeRange
	Chapters   []ChapterPreview
	TotalPages int
}

// Preview lists the chapters and pages that volumeNumber would receive if it started at
// startChapter. The row is applied over options.Volumes, so the next declared volume still
// bounds it. Nothing is written.
func Preview(options *Options, volumeNumber int, startChapter float64) (*PreviewResult, error) {
	if err := validateDirectory(options.Directory); err != nil {
		return nil, err
	}

	files, err := cbz.ScanDirectory(options.Directory, options.Prefix)
	if err != nil {
		return nil, err
	}

	definitions := make([]manga.VolumeDefinition, 0, len(options.Volumes)+1)
	definitions = append(definitions, options.Volumes...)
	definitions = append(definitions, manga.VolumeDefinition{Volume: volumeNumber, StartChapter: startChapter})

	ranges := volume.Resolve(definitions, options.Stop)
	target, _ := lo.Find(ranges, func(r manga.VolumeRange) bool { return r.Volume == volumeNumber })
	assignment, _ := lo.Find(volume.Assign(files, ranges, options.Stop), func(a manga.VolumeAssignment) bool {
		return a.Volume == volumeNumber
	})

	result := &PreviewResult{Volume: volumeNumber, Range: target}
	for _, file := range assignment.Files {
		chapterPreview := ChapterPreview{File: file}
		chapterPreview.Pages, chapterPreview.Err = cbz.ListPages(file.Path)
		if chapterPreview.Err != nil {
			log.Warn().Str("file", file.Name).Err(chapterPreview.Err).Msg("Could not list chapter pages")
		}
		result.TotalPages += len(chapterPreview.Pages)
		result.Chapters = append(result.Chapters, chapterPreview)
	}

	log.Debug().
		Int("volume", volumeNumber).
		Int("chapters", len(result.Chapters)).
		Int("pages", result.TotalPages).
		Msg("Preview computed")
	return result, nil
}
