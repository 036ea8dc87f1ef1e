package cli

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("epicsearch version %s\n", version)
		if rev := vcsRevision(); rev != "" {
			cmd.Printf("commit %s\n", rev)
		}
	},
}

// vcsRevision returns the short VCS revision baked into the binary, if any.
func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			if len(setting.Value) > 12 {
				return setting.Value[:12]
			}
			return setting.Value
		}
	}
	return ""
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
