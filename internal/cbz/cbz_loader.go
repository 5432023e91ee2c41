package cbz

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danielkitchener/CBZBinder/internal/manga"
	"github.com/danielkitchener/CBZBinder/internal/utils"
	"github.com/danielkitchener/CBZBinder/internal/utils/errs"
	binderrors "github.com/danielkitchener/CBZBinder/pkg/binder/errors"
	"github.com/mholt/archives"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// PageExtensions are the member extensions treated as pages.
var PageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// ListPages returns the names of the image members of a chapter archive, sorted by name.
func ListPages(filePath string) ([]string, error) {
	var names []string
	err := extractImages(filePath, func(info archives.FileInfo) error {
		names = append(names, info.NameInArchive)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(names)
	return names, nil
}

// LoadPages reads every image member of a chapter archive into memory, sorted by member name.
// Either every page is returned or an error is.
func LoadPages(filePath string) ([]*manga.Page, error) {
	log.Debug().Str("file_path", filePath).Msg("Starting chapter loading")

	var pages []*manga.Page
	err := extractImages(filePath, func(info archives.FileInfo) (err error) {
		file, err := info.Open()
		if err != nil {
			return binderrors.NewUnreadableArchive(filePath, info.NameInArchive, err)
		}
		defer errs.Capture(&err, file.Close, fmt.Sprintf("failed to close file %s", info.NameInArchive))

		buf := new(bytes.Buffer)
		bytesCopied, err := io.Copy(buf, file)
		if err != nil {
			return binderrors.NewUnreadableArchive(filePath, info.NameInArchive, err)
		}

		pages = append(pages, &manga.Page{
			Member:   info.NameInArchive,
			Size:     uint64(buf.Len()),
			Contents: buf,
		})
		log.Debug().
			Str("file_path", filePath).
			Str("archive_file", info.NameInArchive).
			Int64("bytes_read", bytesCopied).
			Msg("Page loaded successfully")
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(pages, func(a, b *manga.Page) int {
		return strings.Compare(a.Member, b.Member)
	})

	log.Debug().Str("file_path", filePath).Int("pages_loaded", len(pages)).Msg("Chapter loading completed successfully")
	return pages, nil
}

// extractImages opens a chapter archive and calls handle for each image member, in archive order.
func extractImages(filePath string, handle func(info archives.FileInfo) error) (err error) {
	ctx := context.Background()

	file, err := os.Open(filePath)
	if err != nil {
		return binderrors.NewUnreadableArchive(filePath, "", err)
	}
	defer errs.Capture(&err, file.Close, "failed to close chapter archive")

	format, stream, err := archives.Identify(ctx, filePath, file)
	if err != nil {
		if errors.Is(err, archives.NoMatch) {
			return binderrors.NewUnreadableArchive(filePath, "", fmt.Errorf("not a recognized archive: %w", err))
		}
		return binderrors.NewUnreadableArchive(filePath, "", err)
	}
	extractor, ok := format.(archives.Extractor)
	if !ok {
		return binderrors.NewUnreadableArchive(filePath, "", fmt.Errorf("format %s cannot be extracted", format.Extension()))
	}

	log.Debug().Str("file_path", filePath).Str("format", format.Extension()).Msg("Extracting chapter archive")
	err = extractor.Extract(ctx, stream, func(_ context.Context, info archives.FileInfo) error {
		if info.IsDir() || !utils.HasExtension(info.NameInArchive, PageExtensions...) {
			return nil
		}
		return handle(info)
	})
	if err != nil {
		var unreadable *binderrors.UnreadableArchiveError
		if errors.As(err, &unreadable) {
			return err
		}
		return binderrors.NewUnreadableArchive(filePath, "", err)
	}
	return nil
}
