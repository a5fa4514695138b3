// Command gridbot fetches, solves, and archives grid puzzles.  It
// drives the scrape, solve, replay, and storage packages from one
// cobra command tree.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gridbot/puzzle"
	"gridbot/replay"
	"gridbot/scrape"
	"gridbot/solve"
	"gridbot/storage"
)

// version is stamped by the build.
var version = "dev"

var (
	flagConfig  string
	flagVerbose bool

	cfg    *Config
	logger *slog.Logger
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("gridbot: %v", err))
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gridbot",
		Short:         "fetch and solve grid puzzles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig(flagConfig)
			if err != nil {
				return err
			}
			level := slog.LevelWarn
			if flagVerbose {
				level = slog.LevelInfo
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr,
				&slog.HandlerOptions{Level: level}))
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&flagConfig, "config", "c", "",
		"TOML config file")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"log solver progress")
	root.AddCommand(solveCmd(), fetchCmd(), familiesCmd(), versionCmd())
	return root
}

// interruptible returns a context cancelled by SIGINT or SIGTERM,
// so a stuck search dies with a Cancelled result instead of a kill.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
}

func solveCmd() *cobra.Command {
	var kindName, taskFile string
	cmd := &cobra.Command{
		Use:   "solve [task string]",
		Short: "solve one puzzle from its task string",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := taskInput(args, taskFile)
			if err != nil {
				return err
			}
			kind := puzzle.Kind(kindName)
			if !puzzle.IsKnownKind(kind) {
				return fmt.Errorf("unknown puzzle family %q, try 'gridbot families'", kindName)
			}
			spec, err := scrape.BuildSpec(&scrape.Task{Kind: kind, Raw: raw})
			if err != nil {
				return err
			}
			ctx, cancel := interruptible()
			defer cancel()
			sol, err := runSolve(ctx, spec)
			if err != nil {
				return err
			}
			printSolution(spec, sol)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kindName, "kind", "k", "", "puzzle family (required)")
	cmd.Flags().StringVarP(&taskFile, "file", "f", "", "read the task string from a file")
	cmd.MarkFlagRequired("kind")
	return cmd
}

func fetchCmd() *cobra.Command {
	var variant string
	var script bool
	cmd := &cobra.Command{
		Use:   "fetch <family>",
		Short: "scrape a puzzle from the site and solve it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := scrape.KindFromPath(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := interruptible()
			defer cancel()

			store, err := storage.Connect(cfg.Storage.CacheURL, cfg.Storage.DatabaseURL)
			if err != nil {
				return err
			}
			defer store.Close()

			client := scrape.NewClient(cfg.Site.BaseURL)
			defer client.Close()
			task, err := client.Fetch(ctx, kind, variant)
			if err != nil {
				return err
			}
			spec, err := scrape.BuildSpec(task)
			if err != nil {
				return err
			}

			sol, err := store.GetSolution(kind, task.Raw)
			if err != nil {
				logger.Warn("cache lookup failed", "error", err)
			}
			if sol != nil {
				logger.Info("solution served from cache")
			} else {
				if sol, err = runSolve(ctx, spec); err != nil {
					return err
				}
				if err := store.PutSolution(kind, task.Raw, sol); err != nil {
					logger.Warn("cache store failed", "error", err)
				}
				if err := store.SaveRun(kind, variant, sol); err != nil {
					logger.Warn("run archive failed", "error", err)
				}
			}
			printSolution(spec, sol)
			if script && sol.Result == solve.Solved {
				printScript(spec, sol)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&variant, "variant", "daily", "puzzle variant page")
	cmd.Flags().BoolVar(&script, "script", false, "print the replay input script")
	return cmd
}

func familiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "families",
		Short: "list the puzzle families gridbot can solve",
		Run: func(cmd *cobra.Command, args []string) {
			for _, k := range puzzle.KnownKinds() {
				fmt.Println(k)
			}
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the gridbot version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("gridbot", version)
		},
	}
}

// taskInput resolves the task string from the argument or the file
// flag.
func taskInput(args []string, file string) (string, error) {
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	case len(args) == 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("need a task string argument or --file")
	}
}

// runSolve runs the engine with the configured options, logging
// progress when verbose.
func runSolve(ctx context.Context, spec *puzzle.Spec) (*solve.Solution, error) {
	opts := cfg.engineOptions()
	if flagVerbose {
		opts.Logger = logger
	}
	st, err := solve.New(spec, opts)
	if err != nil {
		return nil, err
	}
	return st.Solve(ctx), nil
}

// printSolution writes the run summary and the solved board.
func printSolution(spec *puzzle.Spec, sol *solve.Solution) {
	switch sol.Result {
	case solve.Solved:
		color.Green("%s solved in %v", spec.Kind, sol.Stats.Elapsed.Round(time.Millisecond))
	case solve.Cancelled:
		color.Yellow("%s cancelled after %v", spec.Kind, sol.Stats.Elapsed.Round(time.Millisecond))
	default:
		color.Red("%s is unsatisfiable (proved in %v)", spec.Kind,
			sol.Stats.Elapsed.Round(time.Millisecond))
	}
	fmt.Printf("nodes %d  guesses %d  backtracks %d  eliminations %d  memo hits %d\n",
		sol.Stats.Nodes, sol.Stats.Guesses, sol.Stats.Backtracks,
		sol.Stats.Eliminations, sol.Stats.MemoHits)
	if sol.Result != solve.Solved {
		return
	}
	if sol.Walls != nil {
		fmt.Print(sol.Walls.String())
	} else if sol.Grid != nil {
		fmt.Print(sol.Grid.String())
	}
}

// printScript writes the replay gestures one per line.
func printScript(spec *puzzle.Spec, sol *solve.Solution) {
	steps, err := replay.NewScripter(time.Now().UnixNano()).Script(spec, sol)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("replay: %v", err))
		return
	}
	for _, st := range steps {
		switch st.Kind {
		case replay.WriteAction:
			fmt.Printf("write %c at (%d,%d) after %v\n",
				st.Key, st.Cell.Row, st.Cell.Col, st.Delay)
		case replay.TapAction:
			fmt.Printf("tap x%d at (%d,%d) after %v\n",
				st.Count, st.Cell.Row, st.Cell.Col, st.Delay)
		case replay.StrokeAction:
			fmt.Printf("stroke (%d,%d)-(%d,%d) after %v\n",
				st.From.Row, st.From.Col, st.To.Row, st.To.Col, st.Delay)
		}
	}
	fmt.Printf("%d gestures, about %v of input\n",
		len(steps), replay.Duration(steps).Round(time.Millisecond))
}
