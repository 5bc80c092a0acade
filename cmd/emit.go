package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/commercepulse/telemetry/app"
	"github.com/commercepulse/telemetry/config"
	"github.com/commercepulse/telemetry/core/metric"
)

var (
	emitName  string
	emitValue float64
	emitTags  map[string]string
)

var emitCmd = &cobra.Command{
	Use:   "emit",
	Short: "Emit a test metric through the configured pipeline",
	RunE:  emitMetric,
}

func init() {
	emitCmd.Flags().StringVarP(&emitName, "name", "n", "telemetry.test", "metric name")
	emitCmd.Flags().Float64VarP(&emitValue, "value", "v", 0, "metric value, 0 emits a bare event")
	emitCmd.Flags().StringToStringVarP(&emitTags, "tags", "t", nil, "metric tags as key=value pairs")
	rootCmd.AddCommand(emitCmd)
}

func emitMetric(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}

	m := metric.NewEvent(emitName, emitTags)
	if emitValue != 0 {
		m = metric.NewMeasurement(emitName, emitValue, emitTags)
	}
	svc.Capture(context.Background(), m)

	// Close drains the delivery queue before the process exits.
	return svc.Close()
}
