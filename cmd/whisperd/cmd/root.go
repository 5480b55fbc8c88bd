package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"whisperd/cmd/whisperd/cmd/serve"
	"whisperd/cmd/whisperd/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "whisperd",
	Short: "HTTP speech-to-text service backed by a Whisper model",
	Long: `whisperd loads one Whisper model at startup and serves POST /transcribe.

- Upload audio as multipart field "file"
- The language is fixed by TRANSCRIBE_LANGUAGE
- Running without a subcommand is the same as "whisperd serve"`,
	RunE:          serve.Run,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)

	serve.BindFlags(rootCmd)
}
