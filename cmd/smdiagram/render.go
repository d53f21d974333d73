package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"smdiagram/internal/render"
	"smdiagram/internal/structuremap"
	"smdiagram/options"
)

func newRenderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [flags] <map.json|map.yaml>...",
		Short: "Render diagrams for StructureMap documents",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.runRender,
	}

	cmd.Flags().StringP("output", "o", "", "output directory (overrides config)")
	cmd.Flags().StringSlice("format", nil, "diagrams to render: flow, overview, rules or all (overrides config)")
	cmd.Flags().Int("jobs", 0, "documents rendered in parallel (overrides config)")

	return cmd
}

func (a *app) runRender(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	if output == "" {
		output = a.cfg.Output
	}

	rc, err := a.cfg.RenderConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("format") {
		names, _ := cmd.Flags().GetStringSlice("format")
		if rc.Formats, err = options.ParseFormats(names...); err != nil {
			return err
		}
	}

	jobs := a.cfg.Jobs
	if n, _ := cmd.Flags().GetInt("jobs"); n > 0 {
		jobs = n
	}

	renderer := render.NewRenderer(a.resolver, rc, a.log)

	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(min(jobs, len(args)))

	written := make([]int, len(args))

	for i, path := range args {
		g.Go(func() error {
			sm, err := structuremap.LoadFile(path)
			if err != nil {
				return err
			}

			diagrams := renderer.Render(gctx, sm)
			if len(diagrams) == 0 {
				a.log.Warn().Str("file", path).Msg("No diagram available")
				return nil
			}

			files := render.Files(baseName(path), diagrams)
			if err := render.WriteFiles(files, output); err != nil {
				return err
			}

			written[i] = len(files)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	total := 0
	for _, n := range written {
		total += n
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d diagram(s) for %d document(s) to %s\n", total, len(args), output)

	return nil
}

// baseName strips directory and extension: "maps/a.map.json" becomes "a.map".
func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
