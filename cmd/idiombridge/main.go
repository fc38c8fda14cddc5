package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idiombridge/idiombridge/internal/profile"
	"github.com/idiombridge/idiombridge/server"
	"github.com/idiombridge/idiombridge/store"
)

var rootCmd = &cobra.Command{
	Use:   "idiombridge",
	Short: "Idiom translation service with language identification",
	Long: `IdiomBridge serves an idiom translation API: it identifies the language
of short texts with a heuristic classifier reconciled against an external
detector, finds idiom equivalents across languages via an LLM, and proxies
pronunciation audio.

Examples:
  idiombridge --port 8080
  IDIOMBRIDGE_MODE=prod IDIOMBRIDGE_DATA=/var/opt/idiombridge idiombridge`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := &profile.Profile{
			Mode:    viper.GetString("mode"),
			Addr:    viper.GetString("addr"),
			Port:    viper.GetInt("port"),
			Data:    viper.GetString("data"),
			Driver:  "sqlite",
			Version: version,
		}
		p.FromEnv()
		if err := p.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		return run(p)
	},
}

var version = "dev"

func run(p *profile.Profile) error {
	initLogger(p)

	st, err := store.New(p.DSN)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	srv := server.NewServer(p, st)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx)
}

func initLogger(p *profile.Profile) {
	level := slog.LevelInfo
	if p.IsDev() {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func init() {
	rootCmd.PersistentFlags().String("mode", "demo", `server mode ("prod", "dev", or "demo")`)
	rootCmd.PersistentFlags().String("addr", "", "address to bind to")
	rootCmd.PersistentFlags().Int("port", 8081, "port to listen on")
	rootCmd.PersistentFlags().String("data", "", "data directory")

	viper.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode"))
	viper.BindPFlag("addr", rootCmd.PersistentFlags().Lookup("addr"))
	viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("data", rootCmd.PersistentFlags().Lookup("data"))

	viper.SetEnvPrefix("idiombridge")
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
