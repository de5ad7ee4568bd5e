// Command gsidem resolves ground elevations from GSI elevation tiles.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	gsidem "github.com/twpayne/go-gsidem"
)

var (
	logLevel string

	rootCmd = &cobra.Command{
		Use:          "gsidem latitude longitude",
		Short:        "Resolve the ground elevation at a latitude/longitude",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid latitude %q: %w", args[0], err)
			}
			lng, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid longitude %q: %w", args[1], err)
			}
			logger, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			service := gsidem.NewTileElevationService(
				gsidem.WithLogger(logger),
			)
			elevation, err := service.Elevation(cmd.Context(), lat, lng)
			if err != nil {
				return err
			}
			fmt.Println(elevation)
			return nil
		},
	}

	serveAddr string

	serveCmd = &cobra.Command{
		Use:          "serve",
		Short:        "Serve elevations over HTTP",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			service := gsidem.NewTileElevationService(
				gsidem.WithLogger(logger),
			)
			server := &http.Server{
				Addr:              serveAddr,
				Handler:           gsidem.NewHandler(service, logger),
				ReadHeaderTimeout: 10 * time.Second,
			}
			logger.Info("listening", "addr", serveAddr)
			return server.ListenAndServe()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "ERROR", "log level (DEBUG, INFO, WARN, ERROR)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func newLogger(level string) (*slog.Logger, error) {
	var slogLevel slog.Level
	if err := slogLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel,
	})), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
