// Package volume turns sparse volume definitions into chapter ranges and assigns chapter files to them.
package volume

import "math"

// Limit is an optional global stop chapter. The zero value means no limit.
type Limit struct {
	chapter float64
	set     bool
}

// NoLimit returns a Limit that lets the last volume run to the end of the series.
func NoLimit() Limit {
	return Limit{}
}

// StopAt returns a Limit excluding every chapter numbered chapter or higher.
func StopAt(chapter float64) Limit {
	return Limit{chapter: chapter, set: true}
}

// IsSet reports whether a stop chapter was given.
func (l Limit) IsSet() bool {
	return l.set
}

// Chapter returns the stop chapter, or +Inf when no limit is set.
func (l Limit) Chapter() float64 {
	if !l.set {
		return math.Inf(1)
	}
	return l.chapter
}

// Allows reports whether a chapter number is below the limit.
func (l Limit) Allows(number float64) bool {
	return !l.set || number < l.chapter
}
