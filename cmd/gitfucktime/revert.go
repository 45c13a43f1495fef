package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/G0razd/gitfucktime"
	"github.com/G0razd/gitfucktime/op"
)

type revertCmd struct {
	*cobra.Command

	configPath string
	noBackup   bool
	yes        bool
}

func newRevertCmd() *revertCmd {
	c := &revertCmd{
		Command: &cobra.Command{
			Use:          "revert",
			Short:        "revert the last gitfucktime operation",
			Args:         cobra.NoArgs,
			SilenceUsage: true,
		},
	}

	c.Flags().StringVarP(&c.configPath, "config", "c", c.configPath, "path to the configuration file")
	c.MarkFlagFilename("config")
	c.Flags().BoolVar(&c.noBackup, "no-backup", c.noBackup, "skip creating a backup branch before reverting")
	c.Flags().BoolVarP(&c.yes, "yes", "y", c.yes, "answer yes to all confirmation prompts")

	c.RunE = func(*cobra.Command, []string) error {
		return c.run()
	}

	return c
}

func (c *revertCmd) run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if !confirm(c.yes, "Are you sure you want to revert the last rewriting operation?") {
		fmt.Println("Operation cancelled.")
		return nil
	}

	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	if c.noBackup {
		cfg.NoBackup = true
	}

	repo, err := gitfucktime.Open(".")
	if err != nil {
		return err
	}

	o, err := op.New(withRepoDbPath(cfg, repo), repo)
	if err != nil {
		return err
	}
	defer o.Close()

	result, err := o.Revert(ctx, cfg.NoBackup)
	if err != nil {
		return err
	}

	fmt.Printf("Reverted to state before last operation (%.7s).\n", result.Target)
	if result.Backup != "" {
		fmt.Printf("Backup created: %s\n", result.Backup)
	}
	if result.StashPopFailed {
		fmt.Println("Uncommitted changes could not be reapplied; recover them from refs/gitfucktime/stash.")
	}

	return nil
}
