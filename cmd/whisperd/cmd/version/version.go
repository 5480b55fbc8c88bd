package version

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"whisperd/internal/app/api/provider"
)

var version = "v0.1.0"

// Cmd represents the version command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of whisperd",
	Long:  `All software has versions. This is whisperd's.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), versionString())
		return nil
	},
}

func versionString() string {
	return fmt.Sprintf("whisperd %s (providers: %s)", version, strings.Join(provider.ListRegisteredProviders(), ", "))
}
