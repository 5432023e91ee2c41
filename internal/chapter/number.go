// Package chapter derives chapter numbers from archive file names.
package chapter

import (
	"regexp"
	"strconv"
)

// Unclassified is returned for names that carry no number at all, so they sort after every real chapter.
const Unclassified = 999999.0

var (
	yearPattern   = regexp.MustCompile(`20\d\d`)
	volumePattern = regexp.MustCompile(`[Vv](?:[Oo][Ll])?\.?\s?\d+`)
	markerPattern = regexp.MustCompile(`(?i)(?:ch|c|#)\.?\s*(\d+(?:\.\d+)?)`)
	numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// Number extracts the chapter number from a file name.
//
// Years (20xx) and volume markers (vol/v followed by digits) are removed first. A number
// following a chapter marker (ch, c or #) wins; otherwise the last number left in the name
// is used. Names without any number yield Unclassified.
func Number(filename string) float64 {
	clean := yearPattern.ReplaceAllString(filename, "")
	clean = volumePattern.ReplaceAllString(clean, "")

	if match := markerPattern.FindStringSubmatch(clean); match != nil {
		if number, err := strconv.ParseFloat(match[1], 64); err == nil {
			return number
		}
	}

	numbers := numberPattern.FindAllString(clean, -1)
	if len(numbers) == 0 {
		return Unclassified
	}
	number, err := strconv.ParseFloat(numbers[len(numbers)-1], 64)
	if err != nil {
		return Unclassified
	}
	return number
}
