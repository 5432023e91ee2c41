package cbz

import (
	"bytes"
	"testing"

	"github.com/danielkitchener/CBZBinder/internal/manga"
	"github.com/danielkitchener/CBZBinder/internal/testutil"
	binderrors "github.com/danielkitchener/CBZBinder/pkg/binder/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyPage(t *testing.T) {
	valid := &manga.Page{Member: "001.png", Contents: bytes.NewBuffer(testutil.PNG(t, 12, 34))}
	container, err := VerifyPage(valid)
	require.NoError(t, err)
	assert.Equal(t, "png", container.Format)
	assert.Equal(t, 12, container.Width)
	assert.Equal(t, 34, container.Height)
	assert.Same(t, valid, container.Page)

	broken := &manga.Page{Member: "002.jpg", Contents: pageBuffer("not an image")}
	_, err = VerifyPage(broken)
	var skipped *binderrors.PageSkippedError
	require.ErrorAs(t, err, &skipped)
	assert.Contains(t, err.Error(), "002.jpg")
}
