package cli

import (
	"github.com/spf13/cobra"

	"github.com/Roman-/img2pdf/pkg/pipeline"
	"github.com/Roman-/img2pdf/pkg/source"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for img2pdf.

Bash:
  $ source <(img2pdf completion bash)

Zsh:
  $ img2pdf completion zsh > "${fpath[1]}/_img2pdf"

Fish:
  $ img2pdf completion fish > ~/.config/fish/completions/img2pdf.fish

PowerShell:
  PS> img2pdf completion powershell | Out-String | Invoke-Expression
`,
		Annotations:           map[string]string{skipConfig: "true"},
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// registerCompletions adds value completion for the enumerated flags that
// cmd defines, and completes positional arguments with image files and
// directories.
func registerCompletions(cmd *cobra.Command) {
	fixed := map[string][]string{
		"orientation": {"portrait", "landscape"},
		"separator":   {"none", "solid", "dashed"},
		"order":       {"identity", "reverse", "shuffle"},
		"format":      {pipeline.FormatPDF, pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatJSON},
		"background":  {pipeline.DefaultBackground, pipeline.BackgroundNone},
	}
	for name, values := range fixed {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
	}

	cmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		return source.Extensions(), cobra.ShellCompDirectiveFilterFileExt
	}
}
