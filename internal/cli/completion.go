package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/panelfit/pkg/layout/rows"
)

// completionShells are the shells the completion command generates for.
var completionShells = []string{"bash", "zsh", "fish"}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for panelfit.

Scene arguments of layout, render and preview complete to .json and .toml
files; --style, --align, --gap and render's --format complete to the
accepted values.

Bash:
  $ source <(panelfit completion bash)

Zsh:
  $ panelfit completion zsh > "${fpath[1]}/_panelfit"

Fish:
  $ panelfit completion fish > ~/.config/fish/completions/panelfit.fish
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			default:
				return cmd.Root().GenFishCompletion(out, true)
			}
		},
	}

	return cmd
}

// completeSceneFile offers scene documents for a command's single argument.
func completeSceneFile(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json", "toml"}, cobra.ShellCompDirectiveFilterFileExt
}

// registerOptionCompletions completes the enum-valued layout flags.
func registerOptionCompletions(cmd *cobra.Command) {
	for flag, values := range map[string][]string{
		"style": rows.StyleNames,
		"align": rows.AlignNames,
		"gap":   rows.GapNames,
	} {
		_ = cmd.RegisterFlagCompletionFunc(flag, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
	}
}
