package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/weather-dashboard/internal/app"
	"github.com/bobby-s-dev/weather-dashboard/internal/clock"
	"github.com/bobby-s-dev/weather-dashboard/internal/config"
	"github.com/bobby-s-dev/weather-dashboard/internal/derive"
	"github.com/bobby-s-dev/weather-dashboard/internal/display"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	var err error
	logger, _ = zap.NewProduction(zap.IncreaseLevel(zap.WarnLevel))
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	cfg, err = config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "weatherctl",
		Short:        "Weather dashboard",
		Long:         "Fetches weather for a city and renders current conditions, forecast, hourly series and details",
		SilenceUsage: true,
	}

	getCmd := &cobra.Command{
		Use:   "get [city]",
		Short: "Show the dashboard for a city",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, _ := cmd.Flags().GetString("unit")
			output, _ := cmd.Flags().GetString("output")
			return getDashboard(cmd.Context(), args[0], unit, output)
		},
	}
	getCmd.Flags().StringP("unit", "u", "", "Temperature unit (celsius, fahrenheit)")
	getCmd.Flags().StringP("output", "o", "text", "Output format (text, json)")

	watchCmd := &cobra.Command{
		Use:   "watch [city]",
		Short: "Keep the current conditions of a city on screen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, _ := cmd.Flags().GetString("unit")
			return watch(cmd.Context(), args[0], unit)
		},
	}
	watchCmd.Flags().StringP("unit", "u", "", "Temperature unit (celsius, fahrenheit)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.NewServer(cfg, logger).Run(ctx)
		},
	}

	rootCmd.AddCommand(getCmd, watchCmd, serveCmd)
	return rootCmd
}

func getDashboard(ctx context.Context, city, unitName, output string) error {
	if output != "text" && output != "json" {
		return fmt.Errorf("unknown output format %q", output)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	dashboard := app.NewDashboard(cfg, app.NewClient(cfg, logger), logger)
	defer dashboard.Close()

	dash, err := dashboard.Build(ctx, city, derive.ParseUnit(unitName, cfg.Display.DefaultUnit))
	if err != nil {
		return err
	}

	if output == "json" {
		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode dashboard: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	writeDashboard(os.Stdout, dash)
	return nil
}

func watch(ctx context.Context, city, unitName string) error {
	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	snapshot, err := app.NewClient(cfg, logger).GetCurrent(fetchCtx, city)
	cancel()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	live := display.NewLive(clock.New(clock.SystemClock{}), snapshot, display.Options{
		ClockTick:       cfg.Display.ClockTick,
		ElapsedInterval: cfg.Display.ElapsedInterval,
		Unit:            derive.ParseUnit(unitName, cfg.Display.DefaultUnit),
	}, func(f display.Frame) {
		fmt.Fprint(os.Stdout, "\r"+frameLine(f))
	}, logger)

	live.Start()
	<-ctx.Done()
	live.Stop()
	fmt.Fprintln(os.Stdout)
	return nil
}
