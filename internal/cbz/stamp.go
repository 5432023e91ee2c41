package cbz

import (
	"archive/zip"
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/rs/zerolog/log"
)

const stampSignature = "This volume has been bound by CBZBinder."

// Stamp returns the archive comment written into every bound volume.
func Stamp(boundAt time.Time) string {
	return fmt.Sprintf("%s\n%s", boundAt.Format(time.RFC3339), stampSignature)
}

// ReadStamp reports whether the archive at filePath carries a binder stamp, and when it was bound.
// Archives that cannot be opened are reported as not stamped.
func ReadStamp(filePath string) (boundAt time.Time, stamped bool) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		log.Debug().Str("file_path", filePath).Err(err).Msg("Failed to open archive for stamp reading")
		return time.Time{}, false
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil {
			log.Warn().Str("file_path", filePath).Err(closeErr).Msg("Failed to close archive after stamp reading")
		}
	}()

	if r.Comment == "" {
		return time.Time{}, false
	}

	scanner := bufio.NewScanner(strings.NewReader(r.Comment))
	if !scanner.Scan() {
		return time.Time{}, false
	}
	boundAt, err = dateparse.ParseAny(scanner.Text())
	if err != nil {
		log.Debug().Str("file_path", filePath).Str("comment", r.Comment).Err(err).Msg("Archive comment is not a binder stamp")
		return time.Time{}, false
	}
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != stampSignature {
		return time.Time{}, false
	}
	return boundAt, true
}
