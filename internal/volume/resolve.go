package volume

import (
	"github.com/danielkitchener/CBZBinder/internal/manga"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Resolve computes one half-open chapter range per volume.
//
// Definitions are keyed by volume number, a later duplicate replacing an earlier one. Each
// range ends where the next volume (in volume-number order) starts; the last one ends at
// the stop limit, or never when no limit is set.
func Resolve(definitions []manga.VolumeDefinition, stop Limit) []manga.VolumeRange {
	starts := make(map[int]float64, len(definitions))
	for _, definition := range definitions {
		starts[definition.Volume] = definition.StartChapter
	}

	volumes := lo.Keys(starts)
	slices.Sort(volumes)

	ranges := make([]manga.VolumeRange, 0, len(volumes))
	for i, volume := range volumes {
		end := stop.Chapter()
		if i+1 < len(volumes) {
			end = starts[volumes[i+1]]
		}
		ranges = append(ranges, manga.VolumeRange{
			Volume: volume,
			Start:  starts[volume],
			End:    end,
		})
	}
	return ranges
}
