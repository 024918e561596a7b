package main

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/alex65536/tsrand/internal/randsrc"
	"github.com/alex65536/tsrand/internal/runlog"
	"github.com/alex65536/tsrand/internal/util/signal"
)

var (
	aStreamOp  string
	aStreamMin float64
	aStreamMax float64
	aStreamQPS float64
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Prints values at a steady rate until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), log, os.Interrupt)
		defer cancel()

		op, err := runlog.ParseOp(aStreamOp)
		if err != nil {
			return err
		}
		if op == runlog.OpInt && (aStreamMin != math.Trunc(aStreamMin) || aStreamMax != math.Trunc(aStreamMax)) {
			return fmt.Errorf("integer bounds required")
		}
		o := opts.Stream
		if cmd.Flags().Changed("rate") {
			o.Rate = aStreamQPS
			if err := o.Validate(); err != nil {
				return err
			}
			o.FillDefaults()
		}
		limiter := rate.NewLimiter(rate.Limit(o.Rate), o.Burst)

		return withSource(func(src randsrc.Source) error {
			for {
				if err := limiter.Wait(ctx); err != nil {
					if ctx.Err() != nil {
						return nil
					}
					return fmt.Errorf("wait: %w", err)
				}
				var s string
				switch op {
				case runlog.OpInt:
					v, err := src.IntRange(int(aStreamMin), int(aStreamMax))
					if err != nil {
						return fmt.Errorf("sample: %w", err)
					}
					s = strconv.Itoa(v)
				case runlog.OpFloat:
					v, err := src.Float64Range(aStreamMin, aStreamMax)
					if err != nil {
						return fmt.Errorf("sample: %w", err)
					}
					s = strconv.FormatFloat(v, 'g', -1, 64)
				default:
					panic("must not happen")
				}
				if _, err := fmt.Fprintln(stdout, s); err != nil {
					return err
				}
			}
		})
	},
}

func init() {
	f := streamCmd.Flags()
	f.StringVar(&aStreamOp, "op", string(runlog.OpFloat), "what to sample (\"int\" or \"float\")")
	f.Float64Var(&aStreamMin, "min", 0, "lower bound")
	f.Float64Var(&aStreamMax, "max", 1, "upper bound")
	f.Float64VarP(&aStreamQPS, "rate", "r", 0, "values per second\n(overrides the options file)")
}
