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

// seriesDir writes one chapter archive per number, named "Series Ch.<n>.cbz", each with two pages.
func seriesDir(t *testing.T, numbers ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, number := range numbers {
		testutil.WriteChapter(t, dir, "Series Ch."+number+".cbz", "002.jpg", "001.jpg")
	}
	return dir
}

func chapterNumbers(files []manga.ChapterFile) []float64 {
	return lo.Map(files, func(file manga.ChapterFile, _ int) float64 { return file.Number })
}

var twoVolumes = []manga.VolumeDefinition{{Volume: 1, StartChapter: 0}, {Volume: 2, StartChapter: 8}}

func TestNewPlan(t *testing.T) {
	dir := seriesDir(t, "0", "1", "2", "3", "7", "8", "9", "20")

	t.Run("No stop", func(t *testing.T) {
		plan, err := NewPlan(&Options{Directory: dir, Prefix: "Vol_", Volumes: twoVolumes})
		require.NoError(t, err)

		require.Len(t, plan.Assignments, 2)
		assert.Equal(t, []float64{0, 1, 2, 3, 7}, chapterNumbers(plan.Assignments[0].Files))
		assert.Equal(t, []float64{8, 9, 20}, chapterNumbers(plan.Assignments[1].Files))
		assert.True(t, plan.Assignments[1].Range.Unbounded())
		assert.Empty(t, plan.Unassigned)
		assert.Equal(t, 8, plan.Scanned)
		assert.Equal(t, 8, plan.Chapters())
	})

	t.Run("Stop at 15", func(t *testing.T) {
		plan, err := NewPlan(&Options{Directory: dir, Prefix: "Vol_", Volumes: twoVolumes, Stop: volume.StopAt(15)})
		require.NoError(t, err)

		require.Len(t, plan.Assignments, 2)
		assert.Equal(t, []float64{0, 1, 2, 3, 7}, chapterNumbers(plan.Assignments[0].Files))
		assert.Equal(t, []float64{8, 9}, chapterNumbers(plan.Assignments[1].Files))
		assert.Equal(t, []float64{20}, chapterNumbers(plan.Unassigned))
	})

	t.Run("No volumes", func(t *testing.T) {
		plan, err := NewPlan(&Options{Directory: dir, Prefix: "Vol_"})
		require.NoError(t, err)
		assert.Empty(t, plan.Assignments)
		assert.Len(t, plan.Unassigned, 8)
	})
}

func TestNewPlan_DoesNotModifyVolumes(t *testing.T) {
	dir := seriesDir(t, "1", "2")
	volumes := []manga.VolumeDefinition{{Volume: 2, StartChapter: 2}, {Volume: 1, StartChapter: 1}}
	snapshot := append([]manga.VolumeDefinition(nil), volumes...)

	_, err := NewPlan(&Options{Directory: dir, Volumes: volumes})
	require.NoError(t, err)
	assert.Equal(t, snapshot, volumes)
}

func TestNewPlan_MissingDirectory(t *testing.T) {
	for _, dir := range []string{"", filepath.Join(t.TempDir(), "missing")} {
		_, err := NewPlan(&Options{Directory: dir, Volumes: twoVolumes})
		var notFound *binderrors.DirectoryNotFoundError
		assert.ErrorAs(t, err, &notFound, dir)
	}
}
