package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/string-analyzer/internal/analyzer"
	"github.com/rcliao/string-analyzer/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "analyze [value]",
		Short: "Print the properties of a string without storing it",
		Long:  "Print the properties of a string. The value can be a positional arg or piped via stdin. No server is needed.",
		Run:   runAnalyze,
	}

	RootCmd.AddCommand(cmd)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	value, err := readValue(args, cmd.InOrStdin())
	if err != nil {
		exitErr("analyze", err)
	}

	props := analyzer.Analyze(value)
	printJSON(cmd, analysis{
		Value:      value,
		ID:         props.SHA256Hash,
		Properties: props,
	})
}

// analysis is a record that was never stored, so it has no created_at.
type analysis struct {
	Value      string           `json:"value"`
	ID         string           `json:"id"`
	Properties model.Properties `json:"properties"`
}
