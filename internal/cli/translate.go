package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/string-analyzer/internal/nlquery"
)

func init() {
	cmd := &cobra.Command{
		Use:   "translate [query]",
		Short: "Show the filters a natural-language query maps to",
		Args:  cobra.MinimumNArgs(1),
		Run:   runTranslate,
	}

	cmd.Flags().Bool("rules", false, "Also print the rules that fired")

	RootCmd.AddCommand(cmd)
}

func runTranslate(cmd *cobra.Command, args []string) {
	showRules, _ := cmd.Flags().GetBool("rules")

	interp, err := nlquery.Translate(strings.Join(args, " "))
	if err != nil {
		exitErr("translate", err)
	}

	if showRules {
		printJSON(cmd, struct {
			*nlquery.Interpretation
			Rules []string `json:"rules"`
		}{interp, interp.Rules})
		return
	}
	printJSON(cmd, interp)
}
