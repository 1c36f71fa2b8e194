// Package export renders the shareable results card of a finished tournament.
package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Dosada05/job-bracket/models"
)

const (
	CardWidth  = 1080
	CardHeight = 1350

	margin     = 80.0
	rowHeight  = 190.0
	firstRowY  = 330.0
	badgeSize  = 110.0
	maxEntries = 5
	wrapWidth  = CardWidth - 2*margin - badgeSize - 40
)

var ErrNoWinners = errors.New("results card needs at least one ranked candidate")

var (
	background = color.RGBA{R: 0x12, G: 0x18, B: 0x2b, A: 0xff}
	foreground = color.RGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}
	muted      = color.RGBA{R: 0x9a, G: 0xa4, B: 0xbf, A: 0xff}
	// gold, silver, bronze, then two neutral badges
	badgeColors = []color.RGBA{
		{R: 0xf2, G: 0xc1, B: 0x4e, A: 0xff},
		{R: 0xc0, G: 0xc6, B: 0xd0, A: 0xff},
		{R: 0xcd, G: 0x7f, B: 0x32, A: 0xff},
		{R: 0x5b, G: 0x6b, B: 0x8c, A: 0xff},
		{R: 0x5b, G: 0x6b, B: 0x8c, A: 0xff},
	}
)

// Card is everything printed on a results card.
type Card struct {
	Label       string
	Winners     []models.Candidate
	GeneratedAt time.Time
}

type faces struct {
	title, heading, body, small font.Face
}

func loadFaces() (*faces, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}
	return &faces{
		title:   truetype.NewFace(bold, &truetype.Options{Size: 64}),
		heading: truetype.NewFace(bold, &truetype.Options{Size: 44}),
		body:    truetype.NewFace(regular, &truetype.Options{Size: 30}),
		small:   truetype.NewFace(regular, &truetype.Options{Size: 26}),
	}, nil
}

// RenderPNG draws the card and writes it to w as PNG.
func RenderPNG(w io.Writer, card Card) error {
	if len(card.Winners) == 0 {
		return ErrNoWinners
	}
	ff, err := loadFaces()
	if err != nil {
		return err
	}

	dc := gg.NewContext(CardWidth, CardHeight)
	dc.SetColor(background)
	dc.Clear()

	dc.SetFontFace(ff.title)
	dc.SetColor(foreground)
	dc.DrawStringAnchored("Your Top Jobs", CardWidth/2, 140, 0.5, 0.5)

	if label := strings.TrimSpace(card.Label); label != "" {
		dc.SetFontFace(ff.body)
		dc.SetColor(muted)
		dc.DrawStringAnchored(label, CardWidth/2, 215, 0.5, 0.5)
	}

	for i, c := range card.Winners {
		if i == maxEntries {
			break
		}
		drawEntry(dc, ff, i, c)
	}

	if !card.GeneratedAt.IsZero() {
		dc.SetFontFace(ff.small)
		dc.SetColor(muted)
		dc.DrawStringAnchored(card.GeneratedAt.UTC().Format("2 Jan 2006"), CardWidth/2, CardHeight-60, 0.5, 0.5)
	}

	return dc.EncodePNG(w)
}

func drawEntry(dc *gg.Context, ff *faces, rank int, c models.Candidate) {
	y := firstRowY + float64(rank)*rowHeight
	cx, cy := margin+badgeSize/2, y+badgeSize/2

	dc.SetColor(badgeColors[rank])
	dc.DrawCircle(cx, cy, badgeSize/2)
	dc.Fill()

	dc.SetFontFace(ff.heading)
	dc.SetColor(background)
	dc.DrawStringAnchored(fmt.Sprintf("%d", rank+1), cx, cy, 0.5, 0.4)

	textX := margin + badgeSize + 40
	dc.SetColor(foreground)
	dc.DrawStringAnchored(c.Title, textX, y+30, 0, 0.5)

	if c.Description != "" {
		dc.SetFontFace(ff.small)
		dc.SetColor(muted)
		dc.DrawStringWrapped(c.Description, textX, y+70, 0, 0, wrapWidth, 1.3, gg.AlignLeft)
	}
}
