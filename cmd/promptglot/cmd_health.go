package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"promptglot/internal/app"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show which providers are configured",
	RunE:  runHealth,
}

func init() {
	healthCmd.Flags().Bool("strict", false, "Exit with an error when any provider is missing a key")
}

func runHealth(cmd *cobra.Command, _ []string) error {
	container, err := loadContainer(cmd)
	if err != nil {
		return err
	}
	defer container.Close()

	readiness := container.Readiness(time.Now())
	if err := printJSON(cmd.OutOrStdout(), readiness); err != nil {
		return err
	}
	if strict, _ := cmd.Flags().GetBool("strict"); strict && readiness.Status != app.StatusHealthy {
		return fmt.Errorf("service is %s", readiness.Status)
	}
	return nil
}
