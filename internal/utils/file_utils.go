package utils

import (
	"os"
	"strings"
)

// IsValidFolder checks if the provided path is a valid directory
func IsValidFolder(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// HasExtension reports whether name ends with one of the extensions, ignoring case.
// Extensions are expected in lower case with their leading dot.
func HasExtension(name string, extensions ...string) bool {
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// BaseName returns the last element of an archive member path. Both separators are
// accepted since some archivers store Windows paths verbatim.
func BaseName(member string) string {
	return member[strings.LastIndexAny(member, "/\\")+1:]
}
