package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "put [value]",
		Short: "Store a string on the server",
		Long:  "Store a string. The value can be a positional arg or piped via stdin.",
		Run:   runPut,
	}

	RootCmd.AddCommand(cmd)
}

func runPut(cmd *cobra.Command, args []string) {
	value, err := readValue(args, cmd.InOrStdin())
	if err != nil {
		exitErr("put", err)
	}

	rec, err := newClient().Create(cmd.Context(), value)
	if err != nil {
		exitErr("put", err)
	}
	printJSON(cmd, rec)
}
