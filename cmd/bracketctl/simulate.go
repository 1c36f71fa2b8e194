package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/Dosada05/job-bracket/brackets"
	"github.com/Dosada05/job-bracket/catalog"
	"github.com/Dosada05/job-bracket/export"
	"github.com/Dosada05/job-bracket/models"
)

// picker chooses the winner of a match.
type picker func(m models.Match) int

func newPicker(strategy string, seed int64) (picker, error) {
	switch strategy {
	case "first":
		return func(m models.Match) int { return m.Job1.ID }, nil
	case "second":
		return func(m models.Match) int { return m.Job2.ID }, nil
	case "lower-id":
		return func(m models.Match) int { return min(m.Job1.ID, m.Job2.ID) }, nil
	case "random":
		rng := brackets.NewSeededRand(seed + 1)
		return func(m models.Match) int {
			if rng.IntN(2) == 0 {
				return m.Job1.ID
			}
			return m.Job2.ID
		}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
}

type SimulateCmd struct {
	Seed     int64  `help:"Shuffle seed; the random strategy derives its picks from it too" default:"1"`
	Catalog  string `short:"c" help:"Job catalog JSON file (defaults to the built-in catalog)" type:"existingfile"`
	Strategy string `short:"s" help:"How each match is decided" enum:"first,second,random,lower-id" default:"first"`
	PNG      string `help:"Write the results card to this path"`
	Label    string `help:"Label printed on the results card"`
	Full     bool   `short:"f" help:"Print every job's record instead of the top five"`
}

func (c *SimulateCmd) Run() error {
	return c.run(context.Background(), os.Stdout)
}

func (c *SimulateCmd) run(ctx context.Context, out io.Writer) error {
	loader := catalog.Embedded()
	if c.Catalog != "" {
		loader = catalog.NewFileLoader(c.Catalog)
	}
	candidates, err := loader.Load(ctx)
	if err != nil {
		return err
	}

	pick, err := newPicker(c.Strategy, c.Seed)
	if err != nil {
		return err
	}

	state, err := simulate(candidates, c.Seed, pick)
	if err != nil {
		return err
	}

	progress := brackets.GetBracketProgress(state)
	fmt.Fprintf(out, "matches played: %d\n\n", progress.CompletedMatches)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if c.Full {
		fmt.Fprintln(tw, "PLACE\tID\tJOB\tW\tL")
		for _, s := range brackets.Standings(state) {
			place := "-"
			if s.Placement > 0 {
				place = fmt.Sprint(s.Placement)
			}
			fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%d\n", place, s.Candidate.ID, s.Candidate.Title, s.Wins, s.Losses)
		}
	} else {
		fmt.Fprintln(tw, "PLACE\tID\tJOB")
		for i, w := range state.Winners() {
			fmt.Fprintf(tw, "%d\t%d\t%s\n", i+1, w.ID, w.Title)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if c.PNG == "" {
		return nil
	}
	f, err := os.Create(c.PNG)
	if err != nil {
		return err
	}
	card := export.Card{Label: c.Label, Winners: state.Winners(), GeneratedAt: time.Now().UTC()}
	if err := export.RenderPNG(f, card); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nresults card written to %s\n", c.PNG)
	return nil
}

// simulate plays every match of a seeded bracket with pick.
func simulate(candidates []models.Candidate, seed int64, pick picker) (*brackets.State, error) {
	state, err := brackets.InitializeBracket(candidates, brackets.WithRandSource(brackets.NewSeededRand(seed)))
	if err != nil {
		return nil, err
	}
	for {
		m, ok := state.CurrentMatch()
		if !ok {
			return state, nil
		}
		state, err = brackets.SelectWinner(state, pick(m))
		if err != nil {
			return nil, fmt.Errorf("match %s: %w", m.ID, err)
		}
	}
}
