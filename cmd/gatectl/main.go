package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gpark.dev/acs-admin/internal/admin/config"
)

var (
	baseURL     string
	adminPrefix string
	jsonOutput  bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:           "gatectl",
	Short:         "Operator tools for GPark gates and license plates",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		if cmd.Flags().Changed("base-url") {
			cfg.Gate.BaseURL = baseURL
		}
		if cmd.Flags().Changed("prefix") {
			cfg.Gate.AdminPrefix = adminPrefix
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "admin base URL (default from GATECTL_BASE_URL or config)")
	rootCmd.PersistentFlags().StringVar(&adminPrefix, "prefix", "", "admin path prefix (default \"admin\")")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(plateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
