package cbz

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielkitchener/CBZBinder/internal/manga"
	"github.com/danielkitchener/CBZBinder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageBuffer(contents string) *bytes.Buffer {
	return bytes.NewBufferString(contents)
}

func TestVolumeWriter(t *testing.T) {
	testCases := []struct {
		name          string
		pages         []*manga.Page
		expectedFiles []string
	}{
		{
			name: "Single page",
			pages: []*manga.Page{
				{Member: "001.jpg", OutputName: "v01_c0001.0_001.jpg", Contents: pageBuffer("image data")},
			},
			expectedFiles: []string{"v01_c0001.0_001.jpg"},
		},
		{
			name: "Multiple pages keep write order",
			pages: []*manga.Page{
				{Member: "001.jpg", OutputName: "v01_c0001.0_001.jpg", Contents: pageBuffer("image data 1")},
				{Member: "002.jpg", OutputName: "v01_c0001.0_002.jpg", Contents: pageBuffer("image data 2")},
				{Member: "001.jpg", OutputName: "v01_c0002.0_001.jpg", Contents: pageBuffer("image data 3")},
			},
			expectedFiles: []string{"v01_c0001.0_001.jpg", "v01_c0001.0_002.jpg", "v01_c0002.0_001.jpg"},
		},
		{
			name: "Colliding names get a suffix",
			pages: []*manga.Page{
				{Member: "a/001.jpg", OutputName: "v02_c0005.0_001.jpg", Contents: pageBuffer("a")},
				{Member: "b/001.jpg", OutputName: "v02_c0005.0_001.jpg", Contents: pageBuffer("b")},
				{Member: "c/001.jpg", OutputName: "v02_c0005.0_001.jpg", Contents: pageBuffer("c")},
			},
			expectedFiles: []string{"v02_c0005.0_001.jpg", "v02_c0005.0_001_2.jpg", "v02_c0005.0_001_3.jpg"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			outputPath := filepath.Join(t.TempDir(), "Vol_01.cbz")

			writer := NewVolumeWriter(outputPath)
			for _, page := range tc.pages {
				require.NoError(t, writer.WritePage(page))
			}
			require.NoError(t, writer.Close())
			assert.True(t, writer.Written())
			assert.Equal(t, len(tc.pages), writer.Pages())

			assert.Equal(t, tc.expectedFiles, testutil.Entries(t, outputPath))
			for i, page := range tc.pages {
				assert.Equal(t, tc.expectedFiles[i], page.OutputName)
			}

			r, err := zip.OpenReader(outputPath)
			require.NoError(t, err)
			defer r.Close()
			for _, f := range r.File {
				assert.Equal(t, zip.Store, f.Method, f.Name)
			}
			_, stamped := ReadStamp(outputPath)
			assert.True(t, stamped)
		})
	}
}

func TestVolumeWriter_NoPagesNoFile(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "Vol_01.cbz")

	writer := NewVolumeWriter(outputPath)
	require.NoError(t, writer.Close())

	assert.False(t, writer.Written())
	_, err := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(err))
}

func TestVolumeWriter_ClosedWriterRejectsPages(t *testing.T) {
	writer := NewVolumeWriter(filepath.Join(t.TempDir(), "Vol_01.cbz"))
	require.NoError(t, writer.WritePage(&manga.Page{Member: "1.png", OutputName: "1.png", Contents: pageBuffer("1")}))
	require.NoError(t, writer.Close())
	require.NoError(t, writer.Close())

	assert.Error(t, writer.WritePage(&manga.Page{Member: "2.png", OutputName: "2.png", Contents: pageBuffer("2")}))
}

func TestVolumeWriter_UncreatableOutput(t *testing.T) {
	writer := NewVolumeWriter(filepath.Join(t.TempDir(), "missing", "Vol_01.cbz"))
	err := writer.WritePage(&manga.Page{Member: "1.png", OutputName: "1.png", Contents: pageBuffer("1")})
	assert.ErrorContains(t, err, "failed to create volume file")
}
