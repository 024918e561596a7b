package main

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/alex65536/tsrand/internal/runlog"
	"github.com/alex65536/tsrand/internal/util/human"
	"github.com/alex65536/tsrand/internal/util/slogx"
	"github.com/alex65536/tsrand/internal/util/style"
)

var (
	aDBPath    string
	aRecordOp  string
	aRecordMin float64
	aRecordMax float64
	aRecordN   int
	aRunsLimit int
	aShowAll   bool
)

func withDB(f func(db *runlog.DB) error) error {
	o := opts.DB
	if aDBPath != "" {
		o.Path = aDBPath
	}
	db, err := runlog.New(log, o)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer db.Close()
	return f(db)
}

func requestBounds(op runlog.Op, min, max float64) (runlog.Bounds, error) {
	switch op {
	case runlog.OpInt:
		if min != math.Trunc(min) || max != math.Trunc(max) {
			return runlog.Bounds{}, fmt.Errorf("integer bounds required")
		}
		return runlog.Bounds{IntMin: int64(min), IntMax: int64(max)}, nil
	case runlog.OpFloat:
		return runlog.Bounds{FloatMin: min, FloatMax: max}, nil
	default:
		panic("must not happen")
	}
}

func describeSeed(seed *int64) string {
	if seed == nil {
		return "-"
	}
	return strconv.FormatInt(*seed, 10)
}

func describeBounds(run runlog.Run) string {
	switch run.Op {
	case runlog.OpInt:
		return fmt.Sprintf("[%v, %v)", run.Bounds.IntMin, run.Bounds.IntMax)
	case runlog.OpFloat:
		return fmt.Sprintf("[%v, %v]", run.Bounds.FloatMin, run.Bounds.FloatMax)
	default:
		return "?"
	}
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Samples a sequence and stores it in the run log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _args []string) error {
		op, err := runlog.ParseOp(aRecordOp)
		if err != nil {
			return err
		}
		bounds, err := requestBounds(op, aRecordMin, aRecordMax)
		if err != nil {
			return err
		}
		return withDB(func(db *runlog.DB) error {
			run, err := db.Record(cmd.Context(), runlog.Request{
				Source: opts.Source.Clone(),
				Op:     op,
				Bounds: bounds,
				Count:  aRecordN,
			})
			if err != nil {
				return fmt.Errorf("record: %w", err)
			}
			fmt.Fprintf(stdout, "%v %v\n", run.ID, style.WithS(run.Name, 1))
			if !run.Replayable() {
				log.Warn("run cannot be replayed, use a seeded uniform source for that")
			}
			return nil
		})
	},
}

var replayCmd = &cobra.Command{
	Use:   "replay id-or-name",
	Short: "Samples a recorded run again and compares the sequences",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *runlog.DB) error {
			run, err := db.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := runlog.Replay(run); err != nil {
				if errors.Is(err, runlog.ErrMismatch) {
					fmt.Fprintln(stdout, style.WithS("MISMATCH", 31, 1))
				}
				return err
			}
			fmt.Fprintf(stdout, "%v %v values reproduced\n", style.WithS("OK", 32, 1), run.Count)
			return nil
		})
	},
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Lists recorded runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _args []string) error {
		return withDB(func(db *runlog.DB) error {
			runs, err := db.ListRuns(cmd.Context(), aRunsLimit)
			if err != nil {
				return err
			}
			now := time.Now()
			w := bufio.NewWriter(stdout)
			for _, run := range runs {
				fmt.Fprintf(w, "%v  %-24v %-7v seed=%-20v %-5v %-24v n=%-8v %v\n",
					run.ID,
					run.Name,
					run.Kind,
					describeSeed(run.Seed),
					run.Op,
					describeBounds(run),
					run.Count,
					human.Age(now, run.CreatedAt),
				)
			}
			return w.Flush()
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show id-or-name",
	Short: "Prints a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *runlog.DB) error {
			run, err := db.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := bufio.NewWriter(stdout)
			fmt.Fprintf(w, "id:      %v\n", run.ID)
			fmt.Fprintf(w, "name:    %v\n", run.Name)
			fmt.Fprintf(w, "kind:    %v\n", run.Kind)
			fmt.Fprintf(w, "seed:    %v\n", describeSeed(run.Seed))
			fmt.Fprintf(w, "op:      %v %v\n", run.Op, describeBounds(run))
			fmt.Fprintf(w, "count:   %v\n", run.Count)
			fmt.Fprintf(w, "created: %v\n", run.CreatedAt.Local().Format(time.DateTime))
			if aShowAll {
				for _, v := range run.Ints {
					fmt.Fprintln(w, v)
				}
				for _, v := range run.Floats {
					fmt.Fprintln(w, strconv.FormatFloat(v, 'g', -1, 64))
				}
			}
			return w.Flush()
		})
	},
}

var forgetCmd = &cobra.Command{
	Use:   "forget id-or-name...",
	Short: "Deletes runs from the run log",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *runlog.DB) error {
			var errs []error
			for _, arg := range args {
				run, err := db.GetRun(cmd.Context(), arg)
				if err == nil {
					err = db.DeleteRun(cmd.Context(), run.ID)
				}
				if err != nil {
					log.Warn("could not delete run", "run", arg, slogx.Err(err))
					errs = append(errs, fmt.Errorf("run %q: %w", arg, err))
				}
			}
			return errors.Join(errs...)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{recordCmd, replayCmd, runsCmd, showCmd, forgetCmd} {
		c.Flags().StringVar(&aDBPath, "db", "", "run log database file\n(overrides the options file)")
	}

	f := recordCmd.Flags()
	f.StringVar(&aRecordOp, "op", string(runlog.OpInt), "what to sample (\"int\" or \"float\")")
	f.Float64Var(&aRecordMin, "min", 0, "lower bound")
	f.Float64Var(&aRecordMax, "max", 100, "upper bound")
	f.IntVarP(&aRecordN, "count", "n", 10, "number of values")

	runsCmd.Flags().IntVarP(&aRunsLimit, "limit", "l", 20, "maximum number of runs to list\n(0 means no limit)")
	showCmd.Flags().BoolVarP(&aShowAll, "values", "a", false, "also print the recorded values")
}
