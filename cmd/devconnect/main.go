package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	apiURL  string
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:     "devconnect",
	Short:   "Command line client for the DevConnect developer directory",
	Version: version,
	Long: `Command line client for the DevConnect developer directory.

Examples:
  devconnect register --name alice --email a@x.com --password secret123
  devconnect login --email a@x.com --password secret123
  devconnect profile set --status "Developer" --skills "go,rust"
  devconnect experience add --title Eng --company Acme --from 2020-01-01
  devconnect profile list`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:5000", "base URL of the DevConnect API")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(experienceCmd)
	rootCmd.AddCommand(educationCmd)
	rootCmd.AddCommand(githubCmd)
	rootCmd.AddCommand(accountCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
