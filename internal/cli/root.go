// Package cli implements the string-analyzer CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/string-analyzer/internal/client"
	"github.com/rcliao/string-analyzer/internal/config"
	"github.com/rcliao/string-analyzer/internal/errors"
)

const defaultServerURL = "http://localhost:8080"

var (
	configPath string
	serverURL  string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "string-analyzer",
	Short: "Analyze, store and query strings",
	Long:  "Analyze strings, store them by content hash and query them with filters or plain English. Run `serve` for the HTTP API; the other commands talk to it.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (yaml, json or toml)")
	RootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "Server URL (default: $STRING_ANALYZER_SERVER_URL or "+defaultServerURL+")")
}

func getServerURL() string {
	if serverURL != "" {
		return serverURL
	}
	if env := os.Getenv(config.EnvPrefix + "_SERVER_URL"); env != "" {
		return env
	}
	return defaultServerURL
}

func newClient() *client.Client {
	return client.New(getServerURL())
}

// loadConfig reads the config file and environment, then applies whichever
// of cmd's flags map onto config keys.
func loadConfig(cmd *cobra.Command, flagKeys map[string]string) (*config.Config, error) {
	v, err := config.New(configPath)
	if err != nil {
		return nil, err
	}
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.Wrapf(err, "bind flag %s", name)
			}
		}
	}
	return config.Load(v)
}

// readValue takes the value from args, or from piped stdin with one trailing
// newline removed.
func readValue(args []string, in io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if f, ok := in.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
			return "", errors.InvalidInputf("value is required (positional arg or stdin)")
		}
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", errors.Wrap(err, "read stdin")
	}
	value := strings.TrimSuffix(strings.TrimSuffix(string(b), "\n"), "\r")
	if value == "" {
		return "", errors.InvalidInputf("value is required (positional arg or stdin)")
	}
	return value, nil
}

func printJSON(cmd *cobra.Command, v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		exitErr("encode output", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func printValues(cmd *cobra.Command, values []string) {
	for _, v := range values {
		fmt.Fprintln(cmd.OutOrStdout(), v)
	}
}

func exitErr(msg string, err error) {
	if kind := errors.KindOf(err); kind != errors.KindUnknown {
		fmt.Fprintf(os.Stderr, "error: %s (%s): %v\n", msg, kind, err)
	} else {
		fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	}
	os.Exit(1)
}
