// Command sudokuforge drives RuntimeRunner from the command line:
// geometry introspection subcommands (list-geometries,
// validate-geometry, validate-geometry-catalog; there are no --flags for
// them), a parallel generation run against a GenerateRunConfig built from
// flags,
// and a TTY hotkey protocol (pause/cancel/help) when stdin is a
// terminal.
//
// Flags and subcommands are built on github.com/urfave/cli instead of
// hand-rolled flag.Parse, with github.com/pkg/errors wrapping fatal
// errors at this boundary.
package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"sudokuforge/internal/geometry"
	"sudokuforge/internal/obs"
	"sudokuforge/internal/runconfig"
	sfruntime "sudokuforge/internal/runtime"
)

func main() {
	app := cli.NewApp()
	app.Name = "sudokuforge"
	app.Usage = "generate and analyze Sudoku puzzles over arbitrary box geometries"
	app.Flags = cliFlags()
	app.Action = run

	app.Commands = []cli.Command{
		{
			Name:  "list-geometries",
			Usage: "print every (box_rows, box_cols) pair for n in [4,64]",
			Action: func(*cli.Context) error {
				listGeometries()
				return nil
			},
		},
		{
			Name:      "validate-geometry",
			Usage:     "validate-geometry <box_rows> <box_cols>",
			ArgsUsage: "<box_rows> <box_cols>",
			Action: func(c *cli.Context) error {
				return validateGeometry(c)
			},
		},
		{
			Name:  "validate-geometry-catalog",
			Usage: "validate every supported geometry in [4,64]",
			Action: func(*cli.Context) error {
				return validateGeometryCatalog()
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if coder, ok := err.(cli.ExitCoder); ok {
			os.Exit(coder.ExitCode())
		}
		if isInvalidGeometryErr(err) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

func cliFlags() []cli.Flag {
	d := runconfig.Default()
	return []cli.Flag{
		cli.IntFlag{Name: "box-rows", Value: d.BoxRows},
		cli.IntFlag{Name: "box-cols", Value: d.BoxCols},
		cli.IntFlag{Name: "target", Value: d.TargetPuzzles},
		cli.IntFlag{Name: "difficulty", Value: d.DifficultyLevelRequired},
		cli.StringFlag{Name: "required-strategy", Value: ""},
		cli.IntFlag{Name: "threads", Value: d.Threads},
		cli.Uint64Flag{Name: "seed", Value: d.Seed},
		cli.IntFlag{Name: "min-clues", Value: d.MinClues},
		cli.IntFlag{Name: "max-clues", Value: d.MaxClues},
		cli.Float64Flag{Name: "max-total-time-s", Value: d.MaxTotalTimeS},
		cli.StringFlag{Name: "output-folder", Value: d.OutputFolder},
		cli.StringFlag{Name: "output-file", Value: d.OutputFile},
		cli.BoolFlag{Name: "single-file-only"},
		cli.BoolFlag{Name: "symmetry-center"},
		cli.BoolFlag{Name: "fast-test"},
		cli.BoolFlag{Name: "strict-logical"},
	}
}

func run(c *cli.Context) error {
	cfg := runconfig.Default()
	cfg.BoxRows = c.Int("box-rows")
	cfg.BoxCols = c.Int("box-cols")
	cfg.TargetPuzzles = c.Int("target")
	cfg.DifficultyLevelRequired = c.Int("difficulty")
	cfg.RequiredStrategy = c.String("required-strategy")
	cfg.Threads = c.Int("threads")
	cfg.Seed = c.Uint64("seed")
	cfg.MinClues = c.Int("min-clues")
	cfg.MaxClues = c.Int("max-clues")
	cfg.MaxTotalTimeS = c.Float64("max-total-time-s")
	cfg.OutputFolder = c.String("output-folder")
	cfg.OutputFile = c.String("output-file")
	cfg.SingleFileOnly = c.Bool("single-file-only")
	cfg.SymmetryCenter = c.Bool("symmetry-center")
	cfg.FastTestMode = c.Bool("fast-test")
	cfg.StrictLogical = c.Bool("strict-logical")
	cfg = runconfig.LoadEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	topo, err := geometry.Build(cfg.BoxRows, cfg.BoxCols)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	log := obs.New(os.Stderr, false)

	outPath := cfg.OutputFolder + string(os.PathSeparator) + cfg.OutputFile
	f, err := os.Create(outPath)
	if err != nil {
		return cli.NewExitError(errors.Wrap(err, "sudokuforge: cannot open output file").Error(), 2)
	}
	defer f.Close()
	out := bufio.NewWriter(f)
	defer out.Flush()

	cancel := new(atomic.Bool)
	pause := new(atomic.Bool)
	monitor := sfruntime.NewMonitor()

	if isTTY(os.Stdin) {
		go runHotkeyProtocol(cancel, pause)
	}

	runner := sfruntime.NewRunner(cfg, topo, log, out, sfruntime.Flags{Cancel: cancel, Pause: pause}, monitor, nil, nil)
	res, err := runner.Run(runtime.NumCPU())
	if err != nil {
		return cli.NewExitError(errors.Wrap(err, "sudokuforge: run failed").Error(), 2)
	}

	log.Info().
		Uint64("accepted", res.Accepted).
		Uint64("written", res.Written).
		Uint64("attempts", res.Attempts).
		Uint64("rejected", res.Rejected).
		Float64("elapsed_s", res.ElapsedS).
		Float64("accepted_per_sec", res.AcceptedPerSec).
		Msg("run complete")

	return nil
}

func listGeometries() {
	all := geometry.AllSupportedGeometries()
	ns := make([]int, 0, len(all))
	for n := range all {
		ns = append(ns, n)
	}
	sort.Ints(ns)
	for _, n := range ns {
		for _, pair := range all[n] {
			fmt.Printf("n=%d box=%dx%d\n", n, pair[0], pair[1])
		}
	}
}

func validateGeometry(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.NewExitError("usage: validate-geometry <box_rows> <box_cols>", 1)
	}
	var br, bc int
	if _, err := fmt.Sscanf(c.Args().Get(0), "%d", &br); err != nil {
		return cli.NewExitError("invalid box_rows", 1)
	}
	if _, err := fmt.Sscanf(c.Args().Get(1), "%d", &bc); err != nil {
		return cli.NewExitError("invalid box_cols", 1)
	}
	if _, err := geometry.Build(br, bc); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Printf("ok: box=%dx%d valid\n", br, bc)
	return nil
}

func validateGeometryCatalog() error {
	all := geometry.AllSupportedGeometries()
	for n := 4; n <= 64; n++ {
		for _, pair := range all[n] {
			if _, err := geometry.Build(pair[0], pair[1]); err != nil {
				return cli.NewExitError(err.Error(), 1)
			}
		}
	}
	fmt.Println("ok: every supported geometry in [4,64] validated")
	return nil
}

func isInvalidGeometryErr(err error) bool {
	_, ok := err.(*geometry.InvalidGeometryError)
	return ok
}

func isTTY(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// runHotkeyProtocol reads single keystrokes off stdin: P toggles pause,
// C/Q requests cancel, H/? prints help, and a status line is emitted
// every 3 seconds regardless of keypresses.
func runHotkeyProtocol(cancel, pause *atomic.Bool) {
	reader := bufio.NewReader(os.Stdin)
	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	keys := make(chan byte, 16)
	go func() {
		for {
			b, err := reader.ReadByte()
			if err != nil {
				close(keys)
				return
			}
			keys <- b
		}
	}()

	for {
		select {
		case b, ok := <-keys:
			if !ok {
				return
			}
			switch b {
			case 'P', 'p':
				pause.Store(!pause.Load())
			case 'C', 'c', 'Q', 'q':
				cancel.Store(true)
			case 'H', 'h', '?':
				fmt.Println("[CLI] P=pause C/Q=cancel H/?=help")
			}
		case <-ticker.C:
			state := "running"
			printer := color.New(color.FgGreen)
			if cancel.Load() {
				state = "cancel_requested"
				printer = color.New(color.FgRed)
			} else if pause.Load() {
				state = "paused"
				printer = color.New(color.FgYellow)
			}
			printer.Printf("[CLI] state=%s\n", state)
			if cancel.Load() {
				return
			}
		}
	}
}
