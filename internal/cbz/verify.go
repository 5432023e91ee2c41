package cbz

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/danielkitchener/CBZBinder/internal/manga"
	binderrors "github.com/danielkitchener/CBZBinder/pkg/binder/errors"
	_ "golang.org/x/image/webp"
)

// VerifyPage decodes the image header of a page. Pages that do not decode are reported
// with a PageSkippedError.
func VerifyPage(page *manga.Page) (*manga.PageContainer, error) {
	config, format, err := image.DecodeConfig(bytes.NewReader(page.Contents.Bytes()))
	if err != nil {
		return nil, binderrors.NewPageSkipped(fmt.Sprintf("page %s is not a decodable image: %v", page.Member, err))
	}
	if config.Width <= 0 || config.Height <= 0 {
		return nil, binderrors.NewPageSkipped(fmt.Sprintf("page %s has empty dimensions %dx%d", page.Member, config.Width, config.Height))
	}
	return manga.NewContainer(page, format, config.Width, config.Height), nil
}
