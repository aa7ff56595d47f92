package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Query stored strings in plain English",
		Long:  `Query stored strings in plain English, e.g. "all single word palindromic strings".`,
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().Bool("values-only", false, "Only output matching values, one per line")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	valuesOnly, _ := cmd.Flags().GetBool("values-only")
	query := strings.Join(args, " ")

	res, err := newClient().Search(cmd.Context(), query)
	if err != nil {
		exitErr("search", err)
	}

	if valuesOnly {
		printValues(cmd, res.Data)
		return
	}
	printJSON(cmd, res)
}
