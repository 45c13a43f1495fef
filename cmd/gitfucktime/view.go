package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/G0razd/gitfucktime"
)

type viewCmd struct {
	*cobra.Command

	count int
}

func newViewCmd() *viewCmd {
	c := &viewCmd{
		Command: &cobra.Command{
			Use:          "view",
			Short:        "view the commit history",
			Args:         cobra.NoArgs,
			SilenceUsage: true,
		},
	}

	c.Flags().IntVarP(&c.count, "count", "n", c.count, "number of commits to show, 0 shows all")

	c.RunE = func(*cobra.Command, []string) error {
		return c.run()
	}

	return c
}

func (c *viewCmd) run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	repo, err := gitfucktime.Open(".")
	if err != nil {
		return err
	}

	entries, err := gitfucktime.History(ctx, repo, c.count)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "HASH\tDATE\tAUTHOR\tMESSAGE")
	for _, entry := range entries {
		fmt.Fprintf(w, "%.7s\t%s\t%s\t%s\n",
			entry.Hash.String(),
			entry.When.Format(time.DateTime),
			entry.Author,
			entry.Message)
	}

	return w.Flush()
}
