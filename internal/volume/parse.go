package volume

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/danielkitchener/CBZBinder/internal/manga"
	binderrors "github.com/danielkitchener/CBZBinder/pkg/binder/errors"
)

// DefaultStep is the number of chapters per volume used by Generate when none is given.
const DefaultStep = 4

// ParseDefinition parses a "volume:start" pair such as "3:12" or "3:12.5".
func ParseDefinition(value string) (manga.VolumeDefinition, error) {
	volumePart, startPart, found := strings.Cut(strings.TrimSpace(value), ":")
	if !found {
		return manga.VolumeDefinition{}, binderrors.NewInvalidNumericInput("volume definition", value, errors.New("expected VOLUME:START"))
	}

	volume, err := parseVolume(volumePart)
	if err != nil {
		return manga.VolumeDefinition{}, err
	}
	start, err := parseChapter("start chapter", startPart)
	if err != nil {
		return manga.VolumeDefinition{}, err
	}
	return manga.VolumeDefinition{Volume: volume, StartChapter: start}, nil
}

// ParseDefinitions parses every value with ParseDefinition and stops at the first failure.
func ParseDefinitions(values []string) ([]manga.VolumeDefinition, error) {
	definitions := make([]manga.VolumeDefinition, 0, len(values))
	for _, value := range values {
		definition, err := ParseDefinition(value)
		if err != nil {
			return nil, err
		}
		definitions = append(definitions, definition)
	}
	return definitions, nil
}

// ParseLimit parses a stop chapter. An empty value means no limit.
func ParseLimit(value string) (Limit, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return NoLimit(), nil
	}
	chapter, err := parseChapter("stop chapter", value)
	if err != nil {
		return Limit{}, err
	}
	return StopAt(chapter), nil
}

// Generate builds one definition per volume from startVolume to endVolume inclusive,
// the first starting at startChapter and each following one step chapters later.
func Generate(startVolume, endVolume int, startChapter, step float64) ([]manga.VolumeDefinition, error) {
	if endVolume < startVolume {
		return nil, binderrors.NewInvalidNumericInput("end volume", strconv.Itoa(endVolume), fmt.Errorf("must not be lower than start volume %d", startVolume))
	}
	if step <= 0 {
		return nil, binderrors.NewInvalidNumericInput("step", strconv.FormatFloat(step, 'f', -1, 64), errors.New("must be positive"))
	}

	definitions := make([]manga.VolumeDefinition, 0, endVolume-startVolume+1)
	for i := 0; i <= endVolume-startVolume; i++ {
		definitions = append(definitions, manga.VolumeDefinition{
			Volume:       startVolume + i,
			StartChapter: startChapter + float64(i)*step,
		})
	}
	return definitions, nil
}

// ParseGenerator parses "START_VOL:END_VOL:START_CH[:STEP]" and runs Generate.
func ParseGenerator(value string) ([]manga.VolumeDefinition, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 && len(parts) != 4 {
		return nil, binderrors.NewInvalidNumericInput("generator", value, errors.New("expected START_VOL:END_VOL:START_CH[:STEP]"))
	}

	startVolume, err := parseVolume(parts[0])
	if err != nil {
		return nil, err
	}
	endVolume, err := parseVolume(parts[1])
	if err != nil {
		return nil, err
	}
	startChapter, err := parseChapter("start chapter", parts[2])
	if err != nil {
		return nil, err
	}
	step := float64(DefaultStep)
	if len(parts) == 4 {
		if step, err = parseChapter("step", parts[3]); err != nil {
			return nil, err
		}
	}
	return Generate(startVolume, endVolume, startChapter, step)
}

func parseVolume(value string) (int, error) {
	volume, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, binderrors.NewInvalidNumericInput("volume", value, err)
	}
	if volume < 0 {
		return 0, binderrors.NewInvalidNumericInput("volume", value, errors.New("must not be negative"))
	}
	return volume, nil
}

func parseChapter(field, value string) (float64, error) {
	chapter, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, binderrors.NewInvalidNumericInput(field, value, err)
	}
	if chapter < 0 || math.IsNaN(chapter) || math.IsInf(chapter, 0) {
		return 0, binderrors.NewInvalidNumericInput(field, value, errors.New("must be a finite, non-negative number"))
	}
	return chapter, nil
}
