package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Amr-9/ZeroHunter/internal/config"
	"github.com/Amr-9/ZeroHunter/internal/ui"
	"github.com/Amr-9/ZeroHunter/pkg/generator"
	"github.com/Amr-9/ZeroHunter/pkg/generator/digest"
)

var errNoMatch = errors.New("candidate does not match")

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <candidate>...",
		Short: "Print the digest of each candidate and check it against --zeros",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.verify(args)
		},
	}
}

func (a *app) verify(args []string) error {
	alg, err := generator.ParseAlgorithm(a.cfg.Algorithm)
	if err != nil {
		return err
	}
	h, err := digest.New(alg)
	if err != nil {
		return err
	}
	matcher := digest.NewMatcher(a.cfg.ZeroCount)

	failed := 0
	for _, arg := range args {
		n, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("candidate %q: %w", arg, err)
		}
		m := generator.Match{Candidate: n, Digest: h.Digest(n)}

		mark, color := "✓", ui.ColorGreen
		if !matcher.Matches([]byte(m.Digest)) {
			mark, color = "✗", ui.ColorRed
			failed++
		}
		if a.color {
			fmt.Fprintf(a.out, "%s  %s%s%s\n", m, color, mark, ui.ColorReset)
		} else {
			fmt.Fprintf(a.out, "%s  %s\n", m, mark)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d lack %d trailing zeros", errNoMatch, failed, len(args), matcher.Zeros())
	}
	return nil
}

func newInitConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [dir]",
		Short: "Write a default " + config.FileName + " (existing files are kept)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			path, created, err := config.WriteDefault(dir)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(a.out, "wrote %s\n", path)
			} else {
				fmt.Fprintf(a.out, "%s already exists, left unchanged\n", path)
			}
			return nil
		},
	}
}
