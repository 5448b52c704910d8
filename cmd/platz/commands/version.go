package commands

import (
	"runtime"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/platzio/platz-go/internal/constants"
)

// VersionInfo describes the CLI build.
type VersionInfo struct {
	Version        string `json:"version"         yaml:"version"`
	Commit         string `json:"commit"          yaml:"commit"`
	Built          string `json:"built"           yaml:"built"`
	LibraryVersion string `json:"library_version" yaml:"library_version"`
	GoVersion      string `json:"go_version"      yaml:"go_version"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the Platz CLI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := VersionInfo{
				Version:        version,
				Commit:         commit,
				Built:          date,
				LibraryVersion: constants.Version,
				GoVersion:      runtime.Version(),
			}

			return render(cmd.OutOrStdout(), info, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("Version", info.Version)
				_ = table.Append("Commit", info.Commit)
				_ = table.Append("Built", info.Built)
				_ = table.Append("Library", info.LibraryVersion)
				_ = table.Append("Go", info.GoVersion)
			})
		},
	}
}
