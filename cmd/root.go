package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/polecheck/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "polecheck",
	Short: "Reconcile SPIDAcalc designs against Katapult Pro field data",
	Long:  "Matches poles between a SPIDAcalc exchange export and a Katapult Pro job export via tiered identity resolution, reconciles specs, loading percentages, and service drops, and writes comparison reports.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
