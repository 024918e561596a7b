package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/alex65536/tsrand/internal/randsrc"
	"github.com/alex65536/tsrand/internal/randstat"
	"github.com/alex65536/tsrand/internal/runlog"
	"github.com/alex65536/tsrand/internal/util/human"
	"github.com/alex65536/tsrand/internal/util/style"
)

var (
	aCheckOp      string
	aCheckMin     float64
	aCheckMax     float64
	aCheckSamples int
	aCheckBuckets int
	aCheckAlpha   float64
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Checks that the source is uniform on a range",
	Long: `Draws samples from the source and runs a chi-square goodness-of-fit test on them.

The check fails if any sample falls outside the range or if uniformity is rejected at the
given significance level. Note that a correct source still fails with probability alpha.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _args []string) error {
		op, err := runlog.ParseOp(aCheckOp)
		if err != nil {
			return err
		}
		if aCheckSamples <= 0 {
			return fmt.Errorf("non-positive samples")
		}
		if !(aCheckAlpha > 0 && aCheckAlpha < 1) {
			return fmt.Errorf("alpha must be in (0, 1)")
		}

		var rep randstat.Report
		err = withSource(func(src randsrc.Source) error {
			var err error
			switch op {
			case runlog.OpInt:
				if aCheckMin != math.Trunc(aCheckMin) || aCheckMax != math.Trunc(aCheckMax) {
					return fmt.Errorf("integer bounds required")
				}
				rep, err = randstat.CheckInts(src, int(aCheckMin), int(aCheckMax), aCheckSamples, aCheckBuckets)
			case runlog.OpFloat:
				rep, err = randstat.CheckFloats(src, aCheckMin, aCheckMax, aCheckSamples, aCheckBuckets)
			default:
				panic("must not happen")
			}
			return err
		})
		if err != nil {
			return fmt.Errorf("check: %w", err)
		}

		s := rep.Summary
		chi, df := rep.Histogram.ChiSquare()
		fmt.Fprintf(stdout, "samples:    %v\n", human.Int(int64(s.Count), 3))
		fmt.Fprintf(stdout, "mean:       %.6g (expected %.6g)\n", s.Mean, (aCheckMin+aCheckMax)/2)
		fmt.Fprintf(stdout, "stddev:     %.6g\n", s.StdDev())
		fmt.Fprintf(stdout, "min:        %.6g\n", s.Min)
		fmt.Fprintf(stdout, "max:        %.6g\n", s.Max)
		fmt.Fprintf(stdout, "chi-square: %.3f (df = %v)\n", chi, df)
		fmt.Fprintf(stdout, "p-value:    %.4f\n", rep.PValue())
		fmt.Fprintf(stdout, "in range:   %v\n", human.Int(int64(rep.Histogram.Total()), 3))
		fmt.Fprintf(stdout, "outside:    %v\n", rep.Violations)
		if !rep.Uniform(aCheckAlpha) {
			fmt.Fprintln(stdout, style.WithS("FAIL", 31, 1))
			return fmt.Errorf("source does not look uniform")
		}
		fmt.Fprintln(stdout, style.WithS("PASS", 32, 1))
		return nil
	},
}

func init() {
	f := checkCmd.Flags()
	f.StringVar(&aCheckOp, "op", string(runlog.OpInt), "what to sample (\"int\" or \"float\")")
	f.Float64Var(&aCheckMin, "min", 0, "lower bound")
	f.Float64Var(&aCheckMax, "max", 1000, "upper bound")
	f.IntVarP(&aCheckSamples, "samples", "n", 1_000_000, "number of samples")
	f.IntVarP(&aCheckBuckets, "buckets", "b", 100, "number of histogram buckets")
	f.Float64Var(&aCheckAlpha, "alpha", 0.001, "significance level")
}
