package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output    string
		noCache   bool
		refresh   bool
		showTable bool
		flags     optionFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [scene.json|scene.toml]",
		Short: "Arrange a scene and write the layout as JSON",
		Long: `Arrange a scene and write the layout as JSON.

With randomization enabled (the default) items are first scattered at seeded
random positions; if that fails the row packer is used, which always succeeds.
The output records which engine produced the positions.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, args[0], &flags, output, noCache, refresh, showTable)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&showTable, "table", false, "print the placements as a table")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, input string, flags *optionFlags, output string, noCache, refresh, showTable bool) error {
	ctx := cmd.Context()
	sc, opts, err := c.loadScene(cmd, input, flags)
	if err != nil {
		return err
	}
	opts.Refresh = refresh

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	l, cached, err := runner.ArrangeWithCacheInfo(ctx, sc, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	data = append(data, '\n')

	if output == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := writeFile(ctx, output, data); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(l, len(sc.Items), cached)
	if l.FellBack {
		printWarning("random placement failed, items were packed into rows")
	}
	if showTable && len(l.Items) > 0 {
		fmt.Println(placementTable(l))
	}
	printNewline()
	printNextStep("Render", appName+" render "+input)
	return nil
}

func writeFile(ctx context.Context, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	loggerFromContext(ctx).Debugf("Wrote %s (%d bytes)", path, len(data))
	return nil
}
