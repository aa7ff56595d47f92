package cli

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored strings matching filters",
		Long:  "List stored strings. Only the filters given on the command line are sent.",
		Args:  cobra.NoArgs,
		Run:   runList,
	}

	addFilterFlags(cmd)
	cmd.Flags().Bool("values-only", false, "Only output matching values, one per line")

	RootCmd.AddCommand(cmd)
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("palindrome", false, "Match palindromes (--palindrome=false for non-palindromes)")
	cmd.Flags().Int("min-length", 0, "Minimum length")
	cmd.Flags().Int("max-length", 0, "Maximum length")
	cmd.Flags().Int("word-count", 0, "Exact word count")
	cmd.Flags().String("contains", "", "Character the string must contain")
}

// filterParams maps the filter flags the user set onto API query parameters.
func filterParams(cmd *cobra.Command) url.Values {
	params := url.Values{}
	flags := cmd.Flags()

	if flags.Changed("palindrome") {
		b, _ := flags.GetBool("palindrome")
		params.Set("is_palindrome", strconv.FormatBool(b))
	}
	for flag, param := range map[string]string{
		"min-length": "min_length",
		"max-length": "max_length",
		"word-count": "word_count",
	} {
		if flags.Changed(flag) {
			n, _ := flags.GetInt(flag)
			params.Set(param, strconv.Itoa(n))
		}
	}
	if flags.Changed("contains") {
		c, _ := flags.GetString("contains")
		params.Set("contains_character", c)
	}
	return params
}

func runList(cmd *cobra.Command, args []string) {
	valuesOnly, _ := cmd.Flags().GetBool("values-only")

	res, err := newClient().Filter(cmd.Context(), filterParams(cmd))
	if err != nil {
		exitErr("list", err)
	}

	if valuesOnly {
		printValues(cmd, res.Data)
		return
	}
	printJSON(cmd, res)
}
