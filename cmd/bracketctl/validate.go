package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Dosada05/job-bracket/brackets"
	"github.com/Dosada05/job-bracket/catalog"
)

type ValidateCmd struct {
	Path string `arg:"" help:"Job catalog JSON file" type:"existingfile"`
}

func (c *ValidateCmd) Run() error {
	return c.run(context.Background(), os.Stdout)
}

func (c *ValidateCmd) run(ctx context.Context, out io.Writer) error {
	candidates, err := catalog.NewFileLoader(c.Path).Load(ctx)
	if err != nil {
		return err
	}
	if _, err := brackets.InitializeBracket(candidates); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d jobs, ok\n", c.Path, len(candidates))
	return nil
}
