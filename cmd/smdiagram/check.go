package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"smdiagram/internal/diagnostic"
	"smdiagram/internal/flow"
	"smdiagram/internal/structuremap"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	okColor      = color.New(color.FgGreen)
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <map.json|map.yaml>...",
		Short: "Validate StructureMap documents and report unresolved references",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.runCheck,
	}

	cmd.Flags().Bool("dump", false, "dump the analyzed flow of each document")
	cmd.Flags().Bool("warnings-as-errors", false, "fail on warnings too")

	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	dump, err := cmd.Flags().GetBool("dump")
	if err != nil {
		return fmt.Errorf("failed to get dump flag: %w", err)
	}

	strict, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}

	out := cmd.OutOrStdout()
	analyzer := flow.NewAnalyzer(a.resolver, flow.DefaultConfig(), a.log)
	failed := 0

	for _, path := range args {
		sm, err := structuremap.LoadFile(path)
		if err != nil {
			errorColor.Fprint(out, "error")
			fmt.Fprintf(out, ": %v\n", err)

			failed++

			continue
		}

		diags := structuremap.Validate(sm)

		f, err := analyzer.Analyze(cmd.Context(), sm)
		if err != nil && !errors.Is(err, flow.ErrInvalidMapping) && !errors.Is(err, flow.ErrUnresolvedStructure) {
			return err
		}

		diags.Merge(f.Diagnostics)
		printDiagnostics(out, path, diags)

		if diags.HasErrors() || (strict && len(diags.Warnings) > 0) {
			failed++
		}

		if dump && err == nil {
			spew.Fdump(out, f)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d document(s) failed the check", failed, len(args))
	}

	return nil
}

func printDiagnostics(w io.Writer, path string, diags *diagnostic.Diagnostics) {
	all := diags.All()
	if len(all) == 0 {
		fmt.Fprintf(w, "%s: ", path)
		okColor.Fprintln(w, "ok")

		return
	}

	for _, d := range all {
		c := infoColor

		switch d.Severity {
		case diagnostic.DiagnosticError:
			c = errorColor
		case diagnostic.DiagnosticWarning:
			c = warningColor
		}

		fmt.Fprintf(w, "%s: ", path)
		c.Fprint(w, d.Severity.String())
		fmt.Fprintf(w, ": %s\n", d.String())
	}
}
