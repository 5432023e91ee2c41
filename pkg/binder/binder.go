// Package binder groups per-chapter archives of a folder into per-volume archives.
//
// Three entry points are exposed: Plan scans a folder and assigns chapters to volumes,
// Merge writes one volume archive, and Preview lists what a single volume would contain
// without writing anything. Every call is synchronous and recomputes its scan.
package binder

import (
	"fmt"
	"strconv"

	"github.com/danielkitchener/CBZBinder/internal/manga"
	"github.com/danielkitchener/CBZBinder/internal/utils"
	"github.com/danielkitchener/CBZBinder/internal/volume"
	"github.com/danielkitchener/CBZBinder/pkg/binder/constant"
	binderrors "github.com/danielkitchener/CBZBinder/pkg/binder/errors"
	"github.com/samber/lo"
)

type Options struct {
	// Directory holding the chapter archives.
	Directory string
	// Prefix of the volume archives. Files starting with it are never read as chapters.
	Prefix string
	// Volumes declared by the caller. The slice is only read.
	Volumes []manga.VolumeDefinition
	// Stop is the global stop chapter.
	Stop volume.Limit
	// OutputDirectory receives the volume archives; defaults to Directory.
	OutputDirectory string
	// Format selects the extension of the volume archives.
	Format constant.ArchiveFormat
	// VerifyPages leaves out pages whose image header does not decode.
	VerifyPages bool
}

func (o *Options) outputDirectory() string {
	if o.OutputDirectory != "" {
		return o.OutputDirectory
	}
	return o.Directory
}

func validateDirectory(path string) error {
	if path == "" || !utils.IsValidFolder(path) {
		return binderrors.NewDirectoryNotFound(path, nil)
	}
	return nil
}

// OutputName is the file name of a volume archive: the prefix followed by the volume
// number padded to two digits.
func OutputName(prefix string, volumeNumber int, format constant.ArchiveFormat) string {
	return fmt.Sprintf("%s%02d%s", prefix, volumeNumber, format.Extension())
}

// PageName is the name of a page inside a volume archive. Volume and chapter are padded
// to a fixed width so that sorting the names gives reading order.
func PageName(volumeNumber int, chapterNumber float64, member string) string {
	return chapterSegment(volumeNumber, chapterNumber) + "_" + utils.BaseName(member)
}

func chapterSegment(volumeNumber int, chapterNumber float64) string {
	return fmt.Sprintf("v%02d_c%06.1f", volumeNumber, chapterNumber)
}

// chapterTags numbers the chapters of a volume whose chapter segment is shared with another
// chapter, in file order. The tags are padded to the same width so they sort like the
// files. Chapters with a segment of their own get an empty tag.
func chapterTags(volumeNumber int, files []manga.ChapterFile) []string {
	segment := func(file manga.ChapterFile) string {
		return chapterSegment(volumeNumber, file.Number)
	}
	counts := lo.CountValuesBy(files, segment)
	seen := make(map[string]int, len(counts))

	return lo.Map(files, func(file manga.ChapterFile, _ int) string {
		key := segment(file)
		if counts[key] < 2 {
			return ""
		}
		seen[key]++
		return padIndex(seen[key], counts[key])
	})
}

// pageNames names the pages of one chapter, members being in reading order. When the base
// names alone would not sort in that order, as with one name repeated in two folders,
// every page also carries its position in the chapter.
func pageNames(volumeNumber int, chapterNumber float64, tag string, members []string) []string {
	prefix := chapterSegment(volumeNumber, chapterNumber)
	if tag != "" {
		prefix += "_" + tag
	}

	baseNames := lo.Map(members, func(member string, _ int) string { return utils.BaseName(member) })
	sequenced := false
	for i := 1; i < len(baseNames); i++ {
		if baseNames[i-1] >= baseNames[i] {
			sequenced = true
			break
		}
	}

	return lo.Map(baseNames, func(baseName string, i int) string {
		if sequenced {
			return fmt.Sprintf("%s_%s_%s", prefix, padIndex(i+1, len(baseNames)), baseName)
		}
		return prefix + "_" + baseName
	})
}

func padIndex(index, total int) string {
	return fmt.Sprintf("%0*d", len(strconv.Itoa(total)), index)
}
