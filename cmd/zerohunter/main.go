package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Amr-9/ZeroHunter/internal/config"
	"github.com/Amr-9/ZeroHunter/internal/report"
	"github.com/Amr-9/ZeroHunter/internal/ui"
	"github.com/Amr-9/ZeroHunter/pkg/generator"
	"github.com/Amr-9/ZeroHunter/pkg/generator/cpu"
)

const (
	version    = "1.0.0"
	updateRate = 100 * time.Millisecond
)

// Exit codes
const (
	exitOK        = 0
	exitUsage     = 1
	exitFault     = 2
	exitInterrupt = 130
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// app carries what every subcommand needs once flags are parsed.
type app struct {
	v       *viper.Viper
	cfgFile string
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	color   bool

	cfg     config.Config
	log     *logrus.Logger
	console *ui.Console
}

func run(args []string, in io.Reader, out, errOut io.Writer) int {
	a := &app{v: viper.New(), in: in, out: out, errOut: errOut}
	if f, ok := errOut.(*os.File); ok {
		a.color = ui.IsTerminal(f)
	}

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.Execute()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, generator.ErrCancelled):
		return exitInterrupt
	case errors.Is(err, generator.ErrWorkerFault):
		fmt.Fprintf(errOut, "zerohunter: internal fault: %v\n", err)
		return exitFault
	default:
		fmt.Fprintf(errOut, "zerohunter: %v\n", err)
		return exitUsage
	}
}

func newRootCmd(a *app) *cobra.Command {
	var interactive bool

	root := &cobra.Command{
		Use:   "zerohunter",
		Short: "Find integers whose digest ends with N zero hex digits",
		Long: `zerohunter hashes 1, 2, 3, ... on every CPU core and prints each candidate
whose digest ends with the requested number of '0' hex digits, one
line per match:

    <candidate>, "<digest>"

It stops once --find matches are recorded. Workers already hashing when the
target is reached may add up to workers-1 extra matches.`,
		Version:           version,
		Args:              cobra.NoArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if interactive {
				return a.interactive(cmd.Context())
			}
			return a.search(cmd.Context(), a.cfg)
		},
	}

	fs := root.PersistentFlags()
	fs.StringVar(&a.cfgFile, "config", "", "YAML config file (default ./"+config.FileName+" if present)")
	config.SetDefaults(a.v)
	if err := config.RegisterFlags(fs, a.v); err != nil {
		panic(err)
	}
	root.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for the counts and search repeatedly")

	root.AddCommand(newVerifyCmd(a), newInitConfigCmd(a))
	return root
}

// setup resolves configuration, logging and the console before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "init-config" {
		return nil
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = newLogger(cfg.LogLevel, a.errOut)
	a.console = ui.NewConsole(a.out, a.errOut, a.color)

	if cfg.HighPriority {
		if err := setHighPriority(); err != nil {
			a.log.WithError(err).Warn("could not raise process priority")
		} else {
			a.log.Debug("process priority raised")
		}
	}
	return nil
}

// search runs one search and reports it, mirroring the result/ticker/signal
// loop of the interactive generator.
func (a *app) search(ctx context.Context, cfg config.Config) error {
	gcfg, err := cfg.Generator()
	if err != nil {
		return err
	}
	gen := cpu.NewCPUGenerator(gcfg.Workers, a.log)
	gcfg.Workers = gen.Workers()

	if a.color {
		a.console.PrintWelcomeBanner(version)
	}
	a.console.PrintSearchInfo(gcfg, gcfg.Workers)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	type outcome struct {
		matches []generator.Match
		err     error
	}
	done := make(chan outcome, 1)
	startTime := time.Now()
	go func() {
		matches, err := gen.Search(ctx, gcfg, a.console.PrintMatch)
		done <- outcome{matches, err}
	}()

	var tick <-chan time.Time
	if cfg.Progress && a.color {
		ticker := time.NewTicker(updateRate)
		defer ticker.Stop()
		tick = ticker.C
	}
	frame := 0

	for {
		select {
		case res := <-done:
			elapsed := time.Since(startTime)
			stats := gen.Stats()

			switch {
			case errors.Is(res.err, generator.ErrCancelled):
				a.console.PrintCancelled(len(res.matches), gcfg.TargetCount, elapsed, stats.Attempts)
				return res.err
			case res.err != nil:
				a.console.PrintError(res.err)
				return res.err
			}

			if cfg.Output != "" {
				r := report.Report{
					Config:    gcfg,
					Workers:   gcfg.Workers,
					Matches:   res.matches,
					Elapsed:   elapsed,
					Attempts:  stats.Attempts,
					Generated: time.Now(),
				}
				if err := report.Save(cfg.Output, r); err != nil {
					a.log.WithError(err).Warn("results not saved")
					cfg.Output = ""
				}
			}
			a.console.PrintSummary(res.matches, gcfg.TargetCount, elapsed, stats.Attempts, cfg.Output)
			return nil

		case <-tick:
			a.console.PrintProgress(gen.Stats(), gcfg, frame)
			frame++

		case sig := <-sigChan:
			a.console.ClearLine()
			a.log.WithField("signal", sig.String()).Debug("stopping search")
			cancel()
		}
	}
}

// interactive asks for the counts, searches, and repeats until the user quits.
func (a *app) interactive(ctx context.Context) error {
	prompter := ui.NewPrompter(a.console, a.in)
	cfg := a.cfg

	for {
		zeros, find, err := prompter.GetInputFromUser(cfg.ZeroCount, cfg.TargetCount)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		cfg.ZeroCount, cfg.TargetCount = zeros, find

		err = a.search(ctx, cfg)
		if errors.Is(err, generator.ErrWorkerFault) {
			return err
		}
		if !prompter.AskToContinue() {
			return nil
		}
	}
}

func newLogger(level string, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.WarnLevel
	}
	logger.SetLevel(lvl)
	return logger
}
