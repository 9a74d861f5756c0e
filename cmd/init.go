package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hadocs/docs-addon/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize docs-addon configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the viewer and generates a .docs-addon.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
