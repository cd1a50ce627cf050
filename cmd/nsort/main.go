// Command nsort sorts lines from a file or standard input (spec section 6).
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/nsortgo/nsort/extsort"
)

func main() {
	if err := buildApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "nsort:", err)
		code := 1
		if ec, ok := err.(cli.ExitCoder); ok {
			code = ec.ExitCode()
		}
		os.Exit(code)
	}
}

// buildApp wires the flag table from spec section 6. Help is handled by our
// own "h" flag (aliased to "?") rather than cli/v2's built-in help flag:
// the built-in prints to stdout and exits 0, but spec 6 requires help text
// on standard error and a non-zero exit, and the library has no alias
// mechanism for a bare "?" short name.
func buildApp() *cli.App {
	return &cli.App{
		Name:                   "nsort",
		Usage:                  "sort lines of text",
		UsageText:              "nsort [-n] [-q] [-u] [-v] [-o OUTFILE] [-h|-?] [INFILE]",
		UseShortOptionHandling: true, // lets -nqu be accepted alongside -n -q -u
		HideHelp:               true,
		HideHelpCommand:        true,
		ArgsUsage:              "[INFILE]",
		Writer:                 os.Stderr,
		ErrWriter:              os.Stderr,
		// Return cli.Exit errors from Run instead of letting the library
		// call os.Exit itself; main maps them to the process exit code.
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "h", Aliases: []string{"?"}, Usage: "show help"},
			&cli.BoolFlag{Name: "n", Usage: "numeric comparator on leading number"},
			&cli.BoolFlag{Name: "q", Usage: "quoted-numeric comparator; implies -n"},
			&cli.BoolFlag{Name: "u", Usage: "suppress adjacent duplicate output lines"},
			&cli.BoolFlag{Name: "v", Usage: "verbose timing to standard error"},
			&cli.StringFlag{Name: "o", Usage: "write sorted output to OUTFILE"},
			&cli.IntFlag{Name: "max-lines-per-run", Hidden: true, Usage: "debug override for MAX_LINES_PER_RUN"},
			&cli.IntFlag{Name: "max-runs", Hidden: true, Usage: "debug override for MAX_RUNS"},
		},
		// Invalid option / missing -o argument (spec 6): print usage before
		// the non-zero exit, rather than just the bare parse error.
		OnUsageError: func(cCtx *cli.Context, err error, isSubcommand bool) error {
			cli.ShowAppHelp(cCtx)
			return cli.Exit(err, 2)
		},
		Action: runSort,
	}
}

func runSort(cCtx *cli.Context) error {
	if cCtx.Bool("h") {
		cli.ShowAppHelpAndExit(cCtx, 1)
	}
	if cCtx.NArg() > 1 {
		return cli.Exit("at most one positional INFILE is accepted", 2)
	}

	cfg := extsort.NewConfig()
	switch {
	case cCtx.Bool("q"):
		cfg.Mode = extsort.ModeQuotedNumeric
	case cCtx.Bool("n"):
		cfg.Mode = extsort.ModeNumeric
	}
	cfg.Unique = cCtx.Bool("u")

	if n := cCtx.Int("max-lines-per-run"); n > 0 {
		cfg.MaxLinesPerRun = n
	}
	if n := cCtx.Int("max-runs"); n > 0 {
		cfg.MaxRuns = n
	}

	if cCtx.Bool("v") {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer logger.Sync()
		cfg.Logger = logger
	}

	var in io.Reader = os.Stdin
	if cCtx.NArg() == 1 {
		f, err := os.Open(cCtx.Args().Get(0))
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer f.Close()
		in = f
	}

	sorter := extsort.New(cfg)

	outPath := cCtx.String("o")
	if outPath == "" {
		if err := sorter.Sort(in, os.Stdout); err != nil {
			return cli.Exit(err, 1)
		}
		return nil
	}
	return runToPath(sorter, in, outPath)
}

// runToPath sorts to a private temporary file, then renames it over
// outPath. outPath itself is never opened for writing: it is replaced only
// after ExternalSorter.Sort has returned, by which point in has been read
// to the end. That ordering is what makes "-o may equal INFILE" (spec 6)
// work, not any comparison of the two path strings.
func runToPath(sorter *extsort.ExternalSorter, in io.Reader, outPath string) error {
	tmp, err := os.CreateTemp("", "nsort-out-*")
	if err != nil {
		return cli.Exit(err, 1)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := sorter.Sort(in, tmp); err != nil {
		tmp.Close()
		return cli.Exit(err, 1)
	}
	if err := tmp.Close(); err != nil {
		return cli.Exit(err, 1)
	}
	if err := os.Rename(tmpName, outPath); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}
