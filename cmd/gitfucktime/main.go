package main

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/G0razd/gitfucktime"
	"github.com/G0razd/gitfucktime/op"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootCmd struct {
	*cobra.Command

	configPath string
	start      string
	end        string
	last       int
	first      int
	unpushed   bool
	noBackup   bool
	dryRun     bool
	yes        bool
	seed       int64
}

func newRootCmd() *rootCmd {
	c := &rootCmd{
		Command: &cobra.Command{
			Use:   "gitfucktime",
			Short: "rewrite git commit dates to spread them over a time frame",
			Example: `  # Rewrite all commits between Dec 6-17, 2025
  gitfucktime --start 2025-12-06 --end 2025-12-17

  # Only rewrite unpushed commits
  gitfucktime --start 2025-12-06 --end 2025-12-17 --unpushed

  # Rewrite last 16 commits (from HEAD going back)
  gitfucktime --start 2025-12-06 --end 2025-12-17 --last 16

  # Rewrite oldest 10 commits (from past going forward)
  gitfucktime --start 2025-12-06 --end 2025-12-17 --first 10

  # Show what would be assigned without touching anything
  gitfucktime --last 5 --dry-run

  # View commit history
  gitfucktime view

  # Revert last operation
  gitfucktime revert`,
			Args:         cobra.NoArgs,
			SilenceUsage: true,
		},
	}

	c.Flags().StringVarP(&c.configPath, "config", "c", c.configPath, "path to the configuration file")
	c.MarkFlagFilename("config")
	c.Flags().StringVarP(&c.start, "start", "s", c.start, "start date (YYYY-MM-DD)")
	c.Flags().StringVarP(&c.end, "end", "e", c.end, "end date (YYYY-MM-DD)")
	c.Flags().IntVarP(&c.last, "last", "l", c.last, "only rewrite last N commits (from HEAD going back)")
	c.Flags().IntVarP(&c.first, "first", "f", c.first, "only rewrite first N commits (from oldest going forward)")
	c.Flags().BoolVarP(&c.unpushed, "unpushed", "u", c.unpushed, "only rewrite commits not pushed to the remote ref")
	c.Flags().BoolVar(&c.noBackup, "no-backup", c.noBackup, "skip creating a backup branch before the operation")
	c.Flags().BoolVar(&c.dryRun, "dry-run", c.dryRun, "print the planned timestamps without rewriting anything")
	c.Flags().BoolVarP(&c.yes, "yes", "y", c.yes, "answer yes to all confirmation prompts")
	c.Flags().Int64Var(&c.seed, "seed", c.seed, "random seed, 0 means time based")

	c.RunE = func(*cobra.Command, []string) error {
		return c.run()
	}

	c.AddCommand(newViewCmd().Command, newRevertCmd().Command)

	return c
}

func (c *rootCmd) run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

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

	mode, err := gitfucktime.NewSelectMode(c.last, c.first, c.unpushed)
	if err != nil {
		return err
	}
	n := c.last
	if mode == gitfucktime.SelectModeFirstN {
		n = c.first
	}

	fmt.Println("=== gitfucktime ===")
	fmt.Println("WARNING: This rewrites history. Make sure you have a backup.")

	sel, err := gitfucktime.Select(ctx, repo, mode, n, cfg.RemoteRef)
	if err != nil {
		return err
	}
	if len(sel.Commits) == 0 {
		fmt.Println("No commits to process.")
		return nil
	}
	fmt.Printf("Found %d commits (%s).\n", len(sel.Commits), sel.Mode)

	now := time.Now()

	win, err := gitfucktime.ResolveWindow(c.start, c.end, sel.AnchorTime(), len(sel.Commits), now)
	if err != nil {
		return err
	}

	maxInstant := now
	if c.end != "" && win.End.After(now) {
		fmt.Printf("End date (%s) is in the future. Current time: %s\n",
			win.End.Format(gitfucktime.DateFormat), now.Format(time.DateTime))
		if !confirm(c.yes, "Do you really want to create commits in the future?") {
			fmt.Println("Operation cancelled.")
			return nil
		}
		maxInstant = time.Time{}
	}

	if anchorTime := sel.AnchorTime(); !anchorTime.IsZero() && win.Start.Before(anchorTime) {
		fmt.Printf("Start date (%s) is before the parent commit date (%s).\n",
			win.Start.Format(gitfucktime.DateFormat), anchorTime.Format(time.DateTime))
		fmt.Println("This may create a messy or confusing git history.")
		if !confirm(c.yes, "Do you really want to proceed?") {
			fmt.Println("Operation cancelled.")
			return nil
		}
	}

	divergence, err := gitfucktime.CheckDivergence(ctx, repo, cfg.RemoteRef)
	if err != nil {
		return err
	}
	if divergence.Exceeds(cfg.DivergenceThreshold) {
		fmt.Printf("Branch significantly diverged from %s! Ahead by %d, behind by %d commits.\n",
			cfg.RemoteRef, divergence.Ahead, divergence.Behind)
		fmt.Println("Rewriting history on a diverged branch can cause conflicts.")
		if !confirm(c.yes, "Are you sure you want to continue?") {
			fmt.Println("Operation cancelled.")
			return nil
		}
	}

	seed := c.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	plan, err := gitfucktime.Allocate(rng, sel, win, cfg.Hours(), maxInstant)
	if err != nil {
		return err
	}

	if c.dryRun {
		fmt.Printf("Dry run: %d commits would get new timestamps.\n", plan.Len())
		printPlan(plan)
		return nil
	}

	o, err := op.New(withRepoDbPath(cfg, repo), repo)
	if err != nil {
		return err
	}
	defer o.Close()

	tx, err := o.NewTransaction(sel, plan)
	if err != nil {
		return err
	}

	fmt.Printf("This will rewrite %d commits (%s).\n", plan.Len(), sel.RevisionRange())
	if !confirm(c.yes, "Do you want to continue?") {
		fmt.Println("Operation cancelled.")
		return nil
	}

	record, err := tx.Execute(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Success! History rewritten.")
	if record.Backup != "" {
		fmt.Printf("Backup created: %s\n", record.Backup)
	}
	if sel.Mode == gitfucktime.SelectModeUnpushed {
		fmt.Println("These were unpushed commits - no force push needed, just git push normally.")
	} else {
		fmt.Println("Don't forget to force push: git push --force origin <branch>")
	}

	return nil
}

func printPlan(plan *gitfucktime.Plan) {
	for _, pc := range plan.Commits {
		fmt.Printf("  %.7s -> %s\n", pc.Hash.String(), pc.When.Format(time.DateTime))
	}
}

// loadConfig reads the optional configuration file; without one the
// defaults apply.
func loadConfig(path string) (*op.Config, error) {
	if path == "" {
		return op.DefaultConfig(), nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return op.ParseConfigYAML(file)
}

// withRepoDbPath defaults the operation log location to the repository's
// .git directory, so the revert history survives across runs.
func withRepoDbPath(cfg *op.Config, repo *gitfucktime.Repo) *op.Config {
	if cfg.DbPath == "" {
		if gitdir := repo.GitDir(); gitdir != "" {
			cfg.DbPath = filepath.Join(gitdir, "gitfucktime.db")
		}
	}

	return cfg
}

func confirm(yes bool, message string) bool {
	if yes {
		return true
	}

	fmt.Printf("%s (y/N): ", message)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
