package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffle(t *testing.T) {
	input := []int{1, 2, 3, 4, 5, 6, 7, 8}
	original := append([]int(nil), input...)

	result := Shuffle(input, nil)

	assert.Len(t, result, len(input))
	assert.ElementsMatch(t, original, result)
	assert.Equal(t, original, input, "input must not be modified")
}

func TestShuffleSeededIsReproducible(t *testing.T) {
	input := make([]int, 128)
	for i := range input {
		input[i] = i
	}

	first := Shuffle(input, NewSeededRand(42))
	second := Shuffle(input, NewSeededRand(42))
	other := Shuffle(input, NewSeededRand(43))

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestShuffleEmptyAndSingle(t *testing.T) {
	require.Empty(t, Shuffle([]string{}, nil))
	require.Equal(t, []string{"only"}, Shuffle([]string{"only"}, NewSeededRand(1)))
}
