// Package testutil builds chapter archives on disk for tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Member is one entry of a fixture archive.
type Member struct {
	Name     string
	Contents []byte
}

// WriteArchive writes a ZIP archive named name into dir and returns its path.
func WriteArchive(t *testing.T, dir, name string, members ...Member) string {
	t.Helper()

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	require.NoError(t, err)

	writer := zip.NewWriter(file)
	for _, member := range members {
		w, err := writer.Create(member.Name)
		require.NoError(t, err)
		_, err = w.Write(member.Contents)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	require.NoError(t, file.Close())
	return path
}

// WriteChapter writes an archive whose members are the given page names, each holding
// the member name as its contents.
func WriteChapter(t *testing.T, dir, name string, pages ...string) string {
	t.Helper()

	members := make([]Member, 0, len(pages))
	for _, page := range pages {
		members = append(members, Member{Name: page, Contents: []byte(name + "/" + page)})
	}
	return WriteArchive(t, dir, name, members...)
}

// WriteFile writes raw bytes, typically something that is not an archive at all.
func WriteFile(t *testing.T, dir, name string, contents []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, contents, 0o644))
	return path
}

// PNG returns a small valid PNG image.
func PNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / width), G: uint8(y * 255 / height), B: 100, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

// Entries lists the member names of an archive in stored order.
func Entries(t *testing.T, path string) []string {
	t.Helper()

	reader, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer reader.Close()

	names := make([]string, 0, len(reader.File))
	for _, f := range reader.File {
		names = append(names, f.Name)
	}
	return names
}
