package volume

import (
	"testing"

	"github.com/danielkitchener/CBZBinder/internal/manga"
	binderrors "github.com/danielkitchener/CBZBinder/pkg/binder/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefinition(t *testing.T) {
	tests := []struct {
		value       string
		expected    manga.VolumeDefinition
		expectError bool
	}{
		{value: "1:0", expected: manga.VolumeDefinition{Volume: 1, StartChapter: 0}},
		{value: " 12 : 104.5 ", expected: manga.VolumeDefinition{Volume: 12, StartChapter: 104.5}},
		{value: "3", expectError: true},
		{value: "a:1", expectError: true},
		{value: "1:b", expectError: true},
		{value: "1.5:2", expectError: true},
		{value: "-1:2", expectError: true},
		{value: "1:-2", expectError: true},
		{value: "1:NaN", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			definition, err := ParseDefinition(tt.value)
			if tt.expectError {
				var invalid *binderrors.InvalidNumericInputError
				require.ErrorAs(t, err, &invalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, definition)
		})
	}
}

func TestParseDefinitions_StopsAtFirstFailure(t *testing.T) {
	definitions, err := ParseDefinitions([]string{"1:0", "2:x", "3:9"})
	assert.Nil(t, definitions)
	assert.ErrorContains(t, err, "start chapter")

	definitions, err = ParseDefinitions([]string{"1:0", "2:8"})
	require.NoError(t, err)
	assert.Len(t, definitions, 2)
}

func TestParseLimit(t *testing.T) {
	limit, err := ParseLimit("")
	require.NoError(t, err)
	assert.False(t, limit.IsSet())

	limit, err = ParseLimit("15")
	require.NoError(t, err)
	assert.Equal(t, StopAt(15), limit)

	limit, err = ParseLimit("0")
	require.NoError(t, err)
	assert.True(t, limit.IsSet())

	_, err = ParseLimit("fifteen")
	var invalid *binderrors.InvalidNumericInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "stop chapter", invalid.Field)
}

func TestGenerate(t *testing.T) {
	definitions, err := Generate(3, 5, 10, DefaultStep)
	require.NoError(t, err)
	assert.Equal(t, []manga.VolumeDefinition{
		{Volume: 3, StartChapter: 10},
		{Volume: 4, StartChapter: 14},
		{Volume: 5, StartChapter: 18},
	}, definitions)

	definitions, err = Generate(1, 1, 0, 1)
	require.NoError(t, err)
	assert.Len(t, definitions, 1)

	_, err = Generate(5, 4, 0, 4)
	assert.Error(t, err)

	_, err = Generate(1, 4, 0, 0)
	assert.Error(t, err)
}

func TestParseGenerator(t *testing.T) {
	definitions, err := ParseGenerator("1:3:0")
	require.NoError(t, err)
	assert.Equal(t, []manga.VolumeDefinition{
		{Volume: 1, StartChapter: 0},
		{Volume: 2, StartChapter: 4},
		{Volume: 3, StartChapter: 8},
	}, definitions)

	definitions, err = ParseGenerator("2:3:11:10")
	require.NoError(t, err)
	assert.Equal(t, []manga.VolumeDefinition{
		{Volume: 2, StartChapter: 11},
		{Volume: 3, StartChapter: 21},
	}, definitions)

	for _, value := range []string{"1:3", "1:3:0:4:5", "x:3:0", "1:y:0", "1:3:z", "1:3:0:w", "3:1:0"} {
		_, err := ParseGenerator(value)
		assert.Error(t, err, value)
	}
}
