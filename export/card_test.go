package export

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/job-bracket/models"
)

func TestRenderPNG(t *testing.T) {
	card := Card{
		Label: "Spring career fair",
		Winners: []models.Candidate{
			{ID: 1, Title: "Astronaut", Description: "Trains for and carries out missions in space."},
			{ID: 2, Title: "Chef", Description: "Runs a kitchen and creates dishes for a restaurant menu."},
			{ID: 3, Title: "Pilot"},
			{ID: 4, Title: "Architect"},
			{ID: 5, Title: "Beekeeper"},
		},
		GeneratedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, RenderPNG(&buf, card))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, CardWidth, img.Bounds().Dx())
	assert.Equal(t, CardHeight, img.Bounds().Dy())
}

func TestRenderPNGIgnoresExtraEntries(t *testing.T) {
	winners := make([]models.Candidate, 8)
	for i := range winners {
		winners[i] = models.Candidate{ID: i + 1, Title: "Job"}
	}

	var buf bytes.Buffer
	assert.NoError(t, RenderPNG(&buf, Card{Winners: winners}))
}

func TestRenderPNGRequiresWinners(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, RenderPNG(&buf, Card{Label: "empty"}), ErrNoWinners)
	assert.Zero(t, buf.Len())
}
