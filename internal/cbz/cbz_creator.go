package cbz

import (
	"archive/zip"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/danielkitchener/CBZBinder/internal/manga"
	"github.com/danielkitchener/CBZBinder/internal/utils/errs"
	"github.com/rs/zerolog/log"
)

// VolumeWriter streams pages into one volume archive.
//
// The archive file is only created when the first page is written, so a volume that never
// receives a page leaves nothing on disk. Pages are stored without compression.
type VolumeWriter struct {
	outputPath string
	now        func() time.Time

	file      *os.File
	zipWriter *zip.Writer
	names     map[string]struct{}
	pages     int
	bytes     int64
	closed    bool
}

func NewVolumeWriter(outputPath string) *VolumeWriter {
	return &VolumeWriter{
		outputPath: outputPath,
		now:        time.Now,
		names:      make(map[string]struct{}),
	}
}

// OutputPath is where the archive is, or would be, written.
func (w *VolumeWriter) OutputPath() string {
	return w.outputPath
}

// Pages is the number of pages written so far.
func (w *VolumeWriter) Pages() int {
	return w.pages
}

// Bytes is the number of page bytes written so far.
func (w *VolumeWriter) Bytes() int64 {
	return w.bytes
}

// Written reports whether the archive file exists.
func (w *VolumeWriter) Written() bool {
	return w.file != nil
}

func (w *VolumeWriter) open() error {
	log.Debug().Str("output_path", w.outputPath).Msg("Creating output volume file")
	file, err := os.Create(w.outputPath)
	if err != nil {
		log.Error().Str("output_path", w.outputPath).Err(err).Msg("Failed to create volume file")
		return fmt.Errorf("failed to create volume file: %w", err)
	}
	w.file = file
	w.zipWriter = zip.NewWriter(file)
	return nil
}

// WritePage stores the page under page.OutputName. A name already present in the archive
// gets a numeric suffix before its extension; page.OutputName is updated to the stored name.
func (w *VolumeWriter) WritePage(page *manga.Page) error {
	if w.closed {
		return fmt.Errorf("volume writer for %s is closed", w.outputPath)
	}
	if w.file == nil {
		if err := w.open(); err != nil {
			return err
		}
	}

	page.OutputName = w.uniqueName(page.OutputName)
	fileWriter, err := w.zipWriter.CreateHeader(&zip.FileHeader{
		Name:     page.OutputName,
		Method:   zip.Store,
		Modified: w.now(),
	})
	if err != nil {
		log.Error().Str("output_path", w.outputPath).Str("filename", page.OutputName).Err(err).Msg("Failed to create file in volume archive")
		return fmt.Errorf("failed to create file in volume: %w", err)
	}

	bytesWritten, err := fileWriter.Write(page.Contents.Bytes())
	if err != nil {
		log.Error().Str("output_path", w.outputPath).Str("filename", page.OutputName).Err(err).Msg("Failed to write page contents")
		return fmt.Errorf("failed to write page contents: %w", err)
	}

	w.pages++
	w.bytes += int64(bytesWritten)
	log.Debug().
		Str("output_path", w.outputPath).
		Str("member", page.Member).
		Str("filename", page.OutputName).
		Int("bytes_written", bytesWritten).
		Msg("Page written successfully")
	return nil
}

func (w *VolumeWriter) uniqueName(name string) string {
	candidate := name
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 2; ; i++ {
		if _, taken := w.names[candidate]; !taken {
			w.names[candidate] = struct{}{}
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d%s", base, i, ext)
	}
}

// Close stamps and finalizes the archive. It does nothing when no page was written.
func (w *VolumeWriter) Close() (err error) {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.file == nil {
		log.Debug().Str("output_path", w.outputPath).Msg("No page written, no volume file created")
		return nil
	}
	defer errs.Capture(&err, w.file.Close, "failed to close volume file")

	if err = w.zipWriter.SetComment(Stamp(w.now())); err != nil {
		log.Error().Str("output_path", w.outputPath).Err(err).Msg("Failed to write volume comment")
		err = fmt.Errorf("failed to write comment: %w", err)
	}
	errs.Capture(&err, w.zipWriter.Close, "failed to close volume writer")

	log.Debug().Str("output_path", w.outputPath).Int("pages", w.pages).Int64("bytes", w.bytes).Msg("Volume file creation completed")
	return err
}
