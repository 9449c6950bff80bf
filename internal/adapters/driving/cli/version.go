package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gshell version",
	Args:  exactArgs(0),
	Run: func(_ *cobra.Command, _ []string) {
		printer.Line("gshell %s (%s, %s/%s)", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
