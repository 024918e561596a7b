package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"

	"github.com/alex65536/tsrand/internal/randsrc"
	"github.com/alex65536/tsrand/internal/util/slogx"
	"github.com/alex65536/tsrand/internal/util/style"
	"github.com/alex65536/tsrand/internal/version"
)

var (
	stdout = colorable.NewColorableStdout()
	stderr = colorable.NewColorableStderr()
)

var (
	aOptions string
	aKind    string
	aSeed    int64
	aVerbose bool
)

var (
	opts Options
	log  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:     "tsrand",
	Version: version.Version,
	Short:   "Samples and validates thread-safe random sources",
	Long: `tsrand draws values from thread-safe random sources and checks them.

Two kinds of sources are available. The "uniform" source is fast and can be
seeded to repeat a sequence exactly. The "secure" source is backed by a
ChaCha20 keystream keyed from the operating system and cannot be seeded.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _args []string) error {
		log = slogx.New(stderr, aVerbose)

		var err error
		opts, err = loadOptions(aOptions)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("kind") {
			kind, err := randsrc.ParseKind(aKind)
			if err != nil {
				return fmt.Errorf("bad kind: %w", err)
			}
			opts.Source.Kind = kind
		}
		if flags.Changed("seed") {
			seed := aSeed
			opts.Source.Seed = &seed
		}
		if err := opts.Validate(); err != nil {
			return fmt.Errorf("bad options: %w", err)
		}
		opts.FillDefaults()
		return nil
	},
}

func newSource() (randsrc.Source, error) {
	src, err := randsrc.New(opts.Source)
	if err != nil {
		return nil, fmt.Errorf("create source: %w", err)
	}
	log.Debug("source created",
		slog.String("kind", opts.Source.Kind.String()),
		slogx.Seed(opts.Source.Seed),
	)
	return src, nil
}

// withSource runs f on a fresh source and releases the source afterwards.
func withSource(f func(src randsrc.Source) error) error {
	src, err := newSource()
	if err != nil {
		return err
	}
	defer src.Close()
	return f(src)
}

func main() {
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetErrPrefix(style.WithSE("error:", 31, 1))

	p := rootCmd.PersistentFlags()
	p.StringVarP(
		&aOptions, "options", "o", "",
		"options file in TOML format")
	p.StringVarP(
		&aKind, "kind", "k", "uniform",
		"source kind (\"uniform\" or \"secure\")")
	p.Int64VarP(
		&aSeed, "seed", "s", 0,
		"seed for the uniform source\n(entropy is used if not specified)")
	p.BoolVarP(
		&aVerbose, "verbose", "v", false,
		"log debug messages")

	rootCmd.AddCommand(
		intCmd,
		floatCmd,
		bytesCmd,
		shuffleCmd,
		pickCmd,
		idCmd,
		tokenCmd,
		normalCmd,
		checkCmd,
		stressCmd,
		streamCmd,
		recordCmd,
		replayCmd,
		runsCmd,
		showCmd,
		forgetCmd,
	)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
