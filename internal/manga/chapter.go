package manga

// ChapterFile is a single chapter archive found in a source folder.
type ChapterFile struct {
	// Path is the full path of the archive on disk.
	Path string `json:"path"`
	// Name is the file name as listed in the folder.
	Name string `json:"name"`
	// Number is the chapter number parsed from Name.
	Number float64 `json:"number"`
}
