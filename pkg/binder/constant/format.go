package constant

import (
	"strings"

	"github.com/thediveo/enumflag/v2"
)

type ArchiveFormat enumflag.Flag

const (
	CBZ ArchiveFormat = iota
	ZIP
)

var CommandValue = map[ArchiveFormat][]string{
	CBZ: {"cbz"},
	ZIP: {"zip"},
}

var HelpText = enumflag.Help[ArchiveFormat]{
	CBZ: "Comic book archive (.cbz)",
	ZIP: "Plain ZIP archive (.zip)",
}

var DefaultFormat = CBZ

func (f ArchiveFormat) String() string {
	return CommandValue[f][0]
}

// Extension returns the file extension, dot included, for archives of this format.
func (f ArchiveFormat) Extension() string {
	return "." + f.String()
}

func ListAll() []string {
	var formats []string
	for _, names := range CommandValue {
		formats = append(formats, names[0])
	}
	return formats
}

func FindArchiveFormat(format string) ArchiveFormat {
	for archiveFormat, names := range CommandValue {
		for _, name := range names {
			if strings.EqualFold(name, format) {
				return archiveFormat
			}
		}
	}
	return DefaultFormat
}
