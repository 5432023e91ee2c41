package manga

// PageContainer is a struct that holds a page together with what its image header says about it.
type PageContainer struct {
	// Page is a pointer to a volume page object.
	Page *Page
	// Format is a string representing the format of the image (e.g., "png", "jpeg", "webp").
	Format string
	// Width and Height of the decoded image header.
	Width  int
	Height int
}

func NewContainer(page *Page, format string, width, height int) *PageContainer {
	return &PageContainer{Page: page, Format: format, Width: width, Height: height}
}
