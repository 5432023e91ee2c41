package cbz

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/danielkitchener/CBZBinder/internal/chapter"
	"github.com/danielkitchener/CBZBinder/internal/manga"
	"github.com/danielkitchener/CBZBinder/internal/utils"
	binderrors "github.com/danielkitchener/CBZBinder/pkg/binder/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// ChapterExtensions are the archive extensions accepted as chapter input.
var ChapterExtensions = []string{".zip", ".cbz"}

// ScanDirectory lists the chapter archives of dir in file name order.
//
// Files starting with prefix are previous output and are skipped, as are archives carrying
// a binder stamp. An empty prefix skips nothing by name.
func ScanDirectory(dir, prefix string) ([]manga.ChapterFile, error) {
	log.Debug().Str("directory", dir).Str("prefix", prefix).Msg("Scanning for chapter archives")

	if !utils.IsValidFolder(dir) {
		return nil, binderrors.NewDirectoryNotFound(dir, nil)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, binderrors.NewDirectoryNotFound(dir, err)
	}

	files := lo.FilterMap(entries, func(entry os.DirEntry, _ int) (manga.ChapterFile, bool) {
		name := entry.Name()
		if entry.IsDir() || !utils.HasExtension(name, ChapterExtensions...) {
			return manga.ChapterFile{}, false
		}
		if prefix != "" && strings.HasPrefix(name, prefix) {
			log.Debug().Str("file", name).Msg("Skipping previous output by prefix")
			return manga.ChapterFile{}, false
		}

		path := filepath.Join(dir, name)
		if boundAt, stamped := ReadStamp(path); stamped {
			log.Debug().Str("file", name).Time("bound_at", boundAt).Msg("Skipping previously bound volume")
			return manga.ChapterFile{}, false
		}

		return manga.ChapterFile{Path: path, Name: name, Number: chapter.Number(name)}, true
	})

	log.Debug().Str("directory", dir).Int("chapters", len(files)).Msg("Scan completed")
	return files, nil
}
