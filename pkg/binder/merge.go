package binder

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/danielkitchener/CBZBinder/internal/cbz"
	"github.com/danielkitchener/CBZBinder/internal/manga"
	binderrors "github.com/danielkitchener/CBZBinder/pkg/binder/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// ChapterResult records what happened to one chapter of a volume.
type ChapterResult struct {
	File manga.ChapterFile
	// Pages written for this chapter.
	Pages int
	// Skipped holds a PageSkippedError per page left out by verification.
	Skipped []error
	// Err is an UnreadableArchiveError when the chapter could not be read; nothing of it was written.
	Err error
}

// MergeResult describes one volume archive.
type MergeResult struct {
	Volume     int
	OutputPath string
	// Written is false when no page made it into the volume and no file was created.
	Written  bool
	Pages    int
	Bytes    int64
	Chapters []ChapterResult
	// Err is the volume level failure, if any. The archive may hold the chapters written before it.
	Err error
}

// Failed returns the chapters that could not be read.
func (r *MergeResult) Failed() []ChapterResult {
	return lo.Filter(r.Chapters, func(chapter ChapterResult, _ int) bool {
		return chapter.Err != nil
	})
}

// Merge writes the pages of every chapter of the assignment into one volume archive.
//
// Chapters are read whole before any of their pages is written. A chapter that cannot be
// read is recorded and skipped; the rest of the volume is still written. An existing file
// at the output path is only replaced when an earlier merge wrote it; anything else is an
// OutputConflictError and nothing is written. Once writing started, an error is returned
// only when the volume archive itself cannot be written, together with the result
// describing what was written up to that point.
func Merge(assignment manga.VolumeAssignment, options *Options) (result *MergeResult, err error) {
	outputDirectory := options.outputDirectory()
	if err := validateDirectory(outputDirectory); err != nil {
		return nil, err
	}

	outputPath := filepath.Join(outputDirectory, OutputName(options.Prefix, assignment.Volume, options.Format))
	if err := checkOverwrite(outputPath); err != nil {
		return nil, err
	}

	writer := cbz.NewVolumeWriter(outputPath)
	result = &MergeResult{
		Volume:     assignment.Volume,
		OutputPath: writer.OutputPath(),
	}
	defer func() {
		if closeErr := writer.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
		result.Written = writer.Written()
		result.Pages = writer.Pages()
		result.Bytes = writer.Bytes()
		result.Err = err
	}()

	log.Info().
		Int("volume", assignment.Volume).
		Int("chapters", len(assignment.Files)).
		Str("output_path", writer.OutputPath()).
		Msg("Merging volume")

	tags := chapterTags(assignment.Volume, assignment.Files)
	for i, file := range assignment.Files {
		chapterResult, writeErr := mergeChapter(writer, assignment.Volume, file, tags[i], options.VerifyPages)
		result.Chapters = append(result.Chapters, chapterResult)
		if writeErr != nil {
			return result, fmt.Errorf("volume %02d: %w", assignment.Volume, writeErr)
		}
	}

	return result, nil
}

// checkOverwrite allows replacing a missing file or a volume stamped by an earlier merge only.
func checkOverwrite(outputPath string) error {
	info, err := os.Lstat(outputPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", outputPath, err)
	}
	if !info.Mode().IsRegular() {
		return binderrors.NewOutputConflict(outputPath)
	}
	if _, stamped := cbz.ReadStamp(outputPath); !stamped {
		log.Error().Str("output_path", outputPath).Msg("Volume archive would overwrite a file it did not write")
		return binderrors.NewOutputConflict(outputPath)
	}
	return nil
}

func mergeChapter(writer *cbz.VolumeWriter, volumeNumber int, file manga.ChapterFile, tag string, verify bool) (ChapterResult, error) {
	result := ChapterResult{File: file}

	pages, err := cbz.LoadPages(file.Path)
	if err != nil {
		log.Warn().Str("file", file.Name).Err(err).Msg("Skipping unreadable chapter")
		result.Err = err
		return result, nil
	}

	if verify {
		pages = lo.Filter(pages, func(page *manga.Page, _ int) bool {
			container, err := cbz.VerifyPage(page)
			if err != nil {
				log.Warn().Str("file", file.Name).Str("member", page.Member).Err(err).Msg("Skipping page")
				result.Skipped = append(result.Skipped, err)
				return false
			}
			log.Debug().
				Str("member", page.Member).
				Str("format", container.Format).
				Int("width", container.Width).
				Int("height", container.Height).
				Msg("Page verified")
			return true
		})
	}

	names := pageNames(volumeNumber, file.Number, tag, lo.Map(pages, func(page *manga.Page, _ int) string {
		return page.Member
	}))
	for i, page := range pages {
		page.OutputName = names[i]
		if err := writer.WritePage(page); err != nil {
			return result, err
		}
		result.Pages++
	}

	log.Debug().Str("file", file.Name).Float64("chapter", file.Number).Int("pages", result.Pages).Msg("Chapter merged")
	return result, nil
}

// MergeAll plans the folder and merges every volume that received chapters, one after the
// other. A volume that fails does not stop the others; the returned error joins the
// failures and the results report every volume.
func MergeAll(options *Options) ([]*MergeResult, error) {
	plan, err := NewPlan(options)
	if err != nil {
		return nil, err
	}
	if err := validateDirectory(options.outputDirectory()); err != nil {
		return nil, err
	}

	var results []*MergeResult
	var errs []error
	for _, assignment := range plan.Assignments {
		result, err := Merge(assignment, options)
		if err != nil {
			log.Error().Int("volume", assignment.Volume).Err(err).Msg("Volume merge failed")
			errs = append(errs, err)
		}
		if result != nil {
			results = append(results, result)
		}
	}
	return results, errors.Join(errs...)
}
