package manga

import "bytes"

type Page struct {
	// Member is the path of the page inside its chapter archive.
	Member string `json:"member"`
	// OutputName is the name of the page inside the volume archive.
	OutputName string `json:"output_name"`
	// Size of the page in bytes
	Size uint64 `json:"-"`
	// Contents of the page
	Contents *bytes.Buffer `json:"-"`
}
