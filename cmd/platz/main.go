package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/platzio/platz-go/cmd/platz/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := commands.NewRootCommand()
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))

	cobra.OnInitialize(commands.InitConfig)

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
