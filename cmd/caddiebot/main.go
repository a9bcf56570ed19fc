package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"caddie/internal/catalog"
	"caddie/internal/config"
	"caddie/internal/sequencer"
	"caddie/internal/session"
	"caddie/internal/telemetry"
	"caddie/internal/transport"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	// Flags
	var cfgFile string
	pflag.StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	pflag.BoolP("verbose", "v", false, "Enable verbose/debug logging")

	pflag.String("transport", config.TransportTelegram, "Chat transport: 'telegram' or 'slack'")
	pflag.String("bot-name", "Caddie", "Name the bot greets with")
	pflag.Int("poll-timeout", 30, "Telegram long-poll timeout in seconds")
	pflag.Int("metrics-port", 2112, "Prometheus metrics port")
	pflag.String("log-file", "", "Also write logs to this file")

	pflag.Parse()

	// Config
	config.Load(cfgFile)

	// Bind Flags
	viper.BindPFlag("verbose", pflag.Lookup("verbose"))
	viper.BindPFlag("transport", pflag.Lookup("transport"))
	viper.BindPFlag("bot_name", pflag.Lookup("bot-name"))
	viper.BindPFlag("poll_timeout", pflag.Lookup("poll-timeout"))
	viper.BindPFlag("metrics_port", pflag.Lookup("metrics-port"))
	viper.BindPFlag("log_file", pflag.Lookup("log-file"))

	if err := config.ValidateConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Logger
	logger := telemetry.NewLogger(viper.GetBool("verbose"), viper.GetString("log_file"), false)
	telemetry.InitLogger(viper.GetBool("verbose"), viper.GetString("log_file")) // Ensure global logger is set

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Metrics
	metrics := telemetry.NewMetrics(nil)
	go func() {
		port := viper.GetInt("metrics_port")
		if err := telemetry.StartMetricsServer(port); err != nil {
			logger.Error("Metrics server failed", "port", port, "error", err)
		}
	}()

	// Core
	glyphs := catalog.DefaultGlyphs()
	if v := viper.GetString("glyphs.check"); v != "" {
		glyphs.Check = v
	}
	core := sequencer.New(catalog.New(glyphs), session.NewStore(), logger, metrics)
	core.SetBotName(viper.GetString("bot_name"))

	name := viper.GetString("transport")
	logger.Info("Starting caddiebot", "transport", name,
		"bot_name", viper.GetString("bot_name"), "metrics_port", viper.GetInt("metrics_port"))

	var bot interface {
		Run(context.Context) error
	}
	switch name {
	case config.TransportSlack:
		adapter, err := transport.NewSlack(
			viper.GetString("slack.bot_token"), viper.GetString("slack.app_token"),
			core, logger, metrics)
		if err != nil {
			logger.Error("Failed to initialize Slack transport", "error", err)
			os.Exit(1)
		}
		bot = adapter
	case config.TransportTelegram:
		adapter, err := transport.NewTelegram(
			viper.GetString("telegram.token"),
			core, logger, metrics, viper.GetInt("poll_timeout"))
		if err != nil {
			logger.Error("Failed to initialize Telegram transport", "error", err)
			os.Exit(1)
		}
		bot = adapter
	default:
		logger.Error("Invalid transport. Use 'telegram' or 'slack'", "transport", name)
		os.Exit(1)
	}

	if err := bot.Run(ctx); err != nil {
		if ctx.Err() != nil {
			// Graceful shutdown
			logger.Info("Shutting down", "transport", name)
			return
		}
		logger.Error("Transport failure", "error", err)
		os.Exit(1)
	}
}
