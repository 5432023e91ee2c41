package binder

import (
	"path/filepath"
	"testing"

	"github.com/danielkitchener/CBZBinder/internal/manga"
	"github.com/danielkitchener/CBZBinder/internal/testutil"
	"github.com/danielkitchener/CBZBinder/internal/volume"
	binderrors "github.com/danielkitchener/CBZBinder/pkg/binder/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previewNumbers(result *PreviewResult) []float64 {
	return lo.Map(result.Chapters, func(chapter ChapterPreview, _ int) float64 { return chapter.File.Number })
}

func TestPreview(t *testing.T) {
	dir := seriesDir(t, "0", "1", "2", "3", "7", "8", "9", "20")
	options := &Options{Directory: dir, Prefix: "Vol_", Volumes: twoVolumes}

	t.Run("Bounded by next volume", func(t *testing.T) {
		result, err := Preview(options, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, manga.VolumeRange{Volume: 1, Start: 0, End: 8}, result.Range)
		assert.Equal(t, []float64{0, 1, 2, 3, 7}, previewNumbers(result))
		assert.Equal(t, []string{"001.jpg", "002.jpg"}, result.Chapters[0].Pages)
		assert.Equal(t, 10, result.TotalPages)
	})

	t.Run("Row start overrides definition", func(t *testing.T) {
		result, err := Preview(options, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, []float64{2, 3, 7}, previewNumbers(result))
	})

	t.Run("Last volume honours stop", func(t *testing.T) {
		stopped := *options
		stopped.Stop = volume.StopAt(15)
		result, err := Preview(&stopped, 2, 8)
		require.NoError(t, err)
		assert.Equal(t, 15.0, result.Range.End)
		assert.Equal(t, []float64{8, 9}, previewNumbers(result))
	})

	t.Run("Volume not yet declared", func(t *testing.T) {
		result, err := Preview(options, 3, 9)
		require.NoError(t, err)
		assert.True(t, result.Range.Unbounded())
		assert.Equal(t, []float64{9, 20}, previewNumbers(result))
	})

	t.Run("No matching chapters", func(t *testing.T) {
		result, err := Preview(options, 5, 500)
		require.NoError(t, err)
		assert.Empty(t, result.Chapters)
		assert.Zero(t, result.TotalPages)
	})

	entries, err := filepath.Glob(filepath.Join(dir, "Vol_*"))
	require.NoError(t, err)
	assert.Empty(t, entries, "preview must not write anything")
}

func TestPreview_RecordsUnreadableChapter(t *testing.T) {
	dir := seriesDir(t, "1")
	testutil.WriteFile(t, dir, "Series Ch.2.cbz", []byte("corrupt"))

	result, err := Preview(&Options{Directory: dir}, 1, 0)
	require.NoError(t, err)
	require.Len(t, result.Chapters, 2)
	assert.NoError(t, result.Chapters[0].Err)
	var unreadable *binderrors.UnreadableArchiveError
	assert.ErrorAs(t, result.Chapters[1].Err, &unreadable)
	assert.Equal(t, 2, result.TotalPages)
}

func TestPreview_MissingDirectory(t *testing.T) {
	_, err := Preview(&Options{Directory: filepath.Join(t.TempDir(), "missing")}, 1, 0)
	var notFound *binderrors.DirectoryNotFoundError
	assert.ErrorAs(t, err, &notFound)
}
