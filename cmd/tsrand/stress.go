package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alex65536/tsrand/internal/randsrc"
	"github.com/alex65536/tsrand/internal/stress"
	"github.com/alex65536/tsrand/internal/util/human"
	"github.com/alex65536/tsrand/internal/util/signal"
	"github.com/alex65536/tsrand/internal/util/style"
)

var (
	aStressWorkers int
	aStressCalls   int
)

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Samples from one source on many goroutines at once",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), log, os.Interrupt)
		defer cancel()

		o := opts.Stress
		if cmd.Flags().Changed("workers") {
			o.Workers = aStressWorkers
		}
		if cmd.Flags().Changed("calls") {
			o.Calls = aStressCalls
		}

		var watcher stress.Watcher
		if style.IsStderrTTY() {
			watcher = func(p stress.Progress) {
				rate := float64(p.Done) / max(p.Elapsed.Seconds(), 1e-9)
				fmt.Fprintf(stderr, "\r%v %v/%v %v ",
					style.ProgressBar(30, p.Done, p.Total),
					human.Int(p.Done, 3),
					human.Int(p.Total, 3),
					human.Rate(rate, 3),
				)
			}
		}

		var res stress.Result
		err := withSource(func(src randsrc.Source) error {
			var err error
			res, err = stress.Run(ctx, log, src, o, watcher)
			return err
		})
		if watcher != nil {
			fmt.Fprintln(stderr)
		}
		fmt.Fprintf(stdout, "calls:   %v of %v\n", human.Int(res.Count, 3), human.Int(res.Expected, 3))
		fmt.Fprintf(stdout, "elapsed: %v\n", human.Duration(res.Elapsed))
		fmt.Fprintf(stdout, "rate:    %v\n", human.Rate(res.Rate(), 3))
		if err != nil {
			return fmt.Errorf("stress: %w", err)
		}
		return nil
	},
}

func init() {
	f := stressCmd.Flags()
	f.IntVarP(&aStressWorkers, "workers", "j", 0, "number of goroutines\n(overrides the options file)")
	f.IntVarP(&aStressCalls, "calls", "n", 0, "calls per goroutine\n(overrides the options file)")
}
