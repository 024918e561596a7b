package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alex65536/tsrand/internal/randsrc"
	"github.com/alex65536/tsrand/internal/randutil"
)

var (
	aCount    int
	aIntMin   int
	aIntMax   int
	aFloatMin float64
	aFloatMax float64
	aBytes    int
	aMean     float64
	aStdDev   float64
	aPerm     int
)

func addCountFlag(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&aCount, "count", "n", 1, "number of values to print")
}

func checkCount() error {
	if aCount < 0 {
		return fmt.Errorf("negative count")
	}
	return nil
}

// printEach prints count values produced by next, one per line.
func printEach[T any](count int, next func() (T, error)) error {
	w := bufio.NewWriter(stdout)
	for range count {
		v, err := next()
		if err != nil {
			return fmt.Errorf("sample: %w", err)
		}
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	return w.Flush()
}

var intCmd = &cobra.Command{
	Use:   "int",
	Short: "Prints integers in [min, max)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _args []string) error {
		if err := checkCount(); err != nil {
			return err
		}
		return withSource(func(src randsrc.Source) error {
			return printEach(aCount, func() (int, error) {
				return src.IntRange(aIntMin, aIntMax)
			})
		})
	},
}

var floatCmd = &cobra.Command{
	Use:   "float",
	Short: "Prints floating-point numbers in [min, max]",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _args []string) error {
		if err := checkCount(); err != nil {
			return err
		}
		return withSource(func(src randsrc.Source) error {
			return printEach(aCount, func() (string, error) {
				v, err := src.Float64Range(aFloatMin, aFloatMax)
				if err != nil {
					return "", err
				}
				return strconv.FormatFloat(v, 'g', -1, 64), nil
			})
		})
	},
}

var bytesCmd = &cobra.Command{
	Use:   "bytes",
	Short: "Prints random bytes in hex",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _args []string) error {
		if err := checkCount(); err != nil {
			return err
		}
		if aBytes < 0 {
			return fmt.Errorf("negative size")
		}
		return withSource(func(src randsrc.Source) error {
			buf := make([]byte, aBytes)
			return printEach(aCount, func() (string, error) {
				if _, err := src.Read(buf); err != nil {
					return "", err
				}
				return hex.EncodeToString(buf), nil
			})
		})
	},
}

var shuffleCmd = &cobra.Command{
	Use:   "shuffle [item...]",
	Short: "Prints items in random order",
	Long: `Prints items in random order, one per line.

If no items are given on the command line, they are read from standard input. With --perm n,
a random permutation of 0, 1, ..., n-1 is printed instead.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("perm") {
			if len(args) != 0 {
				return fmt.Errorf("items cannot be combined with --perm")
			}
			return withSource(func(src randsrc.Source) error {
				perm, err := randutil.Perm(src, aPerm)
				if err != nil {
					return err
				}
				i := 0
				return printEach(len(perm), func() (int, error) {
					i++
					return perm[i-1], nil
				})
			})
		}
		items := args
		if len(items) == 0 {
			sc := bufio.NewScanner(os.Stdin)
			for sc.Scan() {
				items = append(items, sc.Text())
			}
			if err := sc.Err(); err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
		}
		return withSource(func(src randsrc.Source) error {
			if err := randutil.Shuffle(src, items); err != nil {
				return fmt.Errorf("shuffle: %w", err)
			}
			w := bufio.NewWriter(stdout)
			for _, item := range items {
				if _, err := fmt.Fprintln(w, item); err != nil {
					return err
				}
			}
			return w.Flush()
		})
	},
}

var pickCmd = &cobra.Command{
	Use:   "pick item...",
	Short: "Prints distinct items chosen at random",
	Long: `Prints up to count distinct items chosen at random, without replacement.

Repeated items on the command line are counted once.
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkCount(); err != nil {
			return err
		}
		var set randutil.Set[string]
		for _, arg := range args {
			set.Add(arg)
		}
		return withSource(func(src randsrc.Source) error {
			return printEach(min(aCount, set.Len()), func() (string, error) {
				item, _, err := set.Pop(src)
				return item, err
			})
		})
	},
}

var idCmd = &cobra.Command{
	Use:   "id",
	Short: "Prints random identifiers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _args []string) error {
		if err := checkCount(); err != nil {
			return err
		}
		return withSource(func(src randsrc.Source) error {
			return printEach(aCount, func() (string, error) {
				return randutil.ID(src)
			})
		})
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Prints random access tokens",
	Long: `Prints random access tokens.

Tokens are meant to be secret, so consider using the secure source for them.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _args []string) error {
		if err := checkCount(); err != nil {
			return err
		}
		if opts.Source.Kind != randsrc.KindSecure {
			log.Warn("generating tokens from a non-secure source")
		}
		return withSource(func(src randsrc.Source) error {
			return printEach(aCount, func() (string, error) {
				return randutil.Token(src)
			})
		})
	},
}

var normalCmd = &cobra.Command{
	Use:   "normal",
	Short: "Prints normally distributed numbers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _args []string) error {
		if err := checkCount(); err != nil {
			return err
		}
		if aStdDev < 0 {
			return fmt.Errorf("negative stddev")
		}
		return withSource(func(src randsrc.Source) error {
			// StdSource panics once src is released, which cannot happen here.
			r := rand.New(randsrc.StdSource(src))
			return printEach(aCount, func() (string, error) {
				v := r.NormFloat64()*aStdDev + aMean
				return strconv.FormatFloat(v, 'g', -1, 64), nil
			})
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{intCmd, floatCmd, bytesCmd, pickCmd, idCmd, tokenCmd, normalCmd} {
		addCountFlag(c)
	}

	f := intCmd.Flags()
	f.IntVar(&aIntMin, "min", 0, "lower bound (inclusive)")
	f.IntVar(&aIntMax, "max", 100, "upper bound (exclusive)")

	f = floatCmd.Flags()
	f.Float64Var(&aFloatMin, "min", 0, "lower bound")
	f.Float64Var(&aFloatMax, "max", 1, "upper bound")

	f = bytesCmd.Flags()
	f.IntVarP(&aBytes, "size", "b", 16, "bytes per line")

	shuffleCmd.Flags().IntVarP(&aPerm, "perm", "p", 0, "print a permutation of [0, n)")

	f = normalCmd.Flags()
	f.Float64Var(&aMean, "mean", 0, "mean")
	f.Float64Var(&aStdDev, "stddev", 1, "standard deviation")
}
