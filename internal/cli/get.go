package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get <value>",
		Short: "Retrieve a stored string",
		Args:  cobra.ExactArgs(1),
		Run:   runGet,
	}

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	rec, err := newClient().Get(cmd.Context(), args[0])
	if err != nil {
		exitErr("get", err)
	}
	printJSON(cmd, rec)
}
