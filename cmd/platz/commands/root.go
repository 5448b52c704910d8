package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/platzio/platz-go/internal/auth"
	"github.com/platzio/platz-go/internal/constants"
)

// NewRootCommand creates the platz command with its global flags and every
// subcommand except version, which needs build metadata.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "platz",
		Short: "Platz API CLI",
		Long: `A command-line interface for the Platz API.

Credentials are taken from PLATZ_URL with PLATZ_API_TOKEN or PLATZ_USER_TOKEN,
then from the profile file (~/.config/platz/config.toml), then from the secret
mounted at /var/run/secrets/platz.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "CLI settings file (default is <config dir>/platz/cli.yaml)")
	flags.StringP("profile", "p", "", "profile to use from the profile file")
	flags.StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.Int("page-size", 0, "page size requested from list endpoints (server default when 0)")
	flags.String("config-home", "", "config root holding platz/config.toml (default is ~/.config, then the platform config dir)")

	for _, name := range []string{"config", "profile", "output", "verbose", "page-size", "config-home"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(NewWhoamiCommand())
	rootCmd.AddCommand(NewProfilesCommand())
	rootCmd.AddCommand(NewGetCommand())
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewUsersCommand())
	rootCmd.AddCommand(NewDeploymentsCommand())
	rootCmd.AddCommand(NewEnvsCommand())

	return rootCmd
}

// InitConfig loads the optional CLI settings file and PLATZ_CLI_* environment
// variables into viper.
func InitConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		for _, dir := range profileDirs() {
			viper.AddConfigPath(filepath.Join(dir, constants.ConfigDirName))
		}

		viper.SetConfigType("yaml")
		viper.SetConfigName(constants.CLIConfigFileName)
	}

	viper.SetEnvPrefix("PLATZ_CLI")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// profileDirs returns the config roots searched for the profile file.
func profileDirs() []string {
	if home := viper.GetString("config-home"); home != "" {
		return []string{home}
	}

	return auth.DefaultProfileDirs()
}
