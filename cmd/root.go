package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "docs-addon",
	Short: "Browser-based document viewer for Home Assistant",
	Long: `Docs Addon serves a folder of markdown, notebooks, images and other
documents as a browsable site. It runs either standalone or as a Home
Assistant add-on behind the supervisor's ingress proxy, where every
in-app URL is rewritten so navigation survives the proxy's
unpredictable base path.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".docs-addon.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
