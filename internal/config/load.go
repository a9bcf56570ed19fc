package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Transport names accepted by the daemon.
const (
	TransportTelegram = "telegram"
	TransportSlack    = "slack"
)

// Load initializes the configuration from file and environment variables.
func Load(cfgFile string) {
	// explicit .env loading; a missing file is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("CADDIE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Tokens keep their conventional names alongside the CADDIE_ prefix.
	viper.BindEnv("telegram.token", "CADDIE_TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN")
	viper.BindEnv("slack.bot_token", "CADDIE_SLACK_BOT_TOKEN", "SLACK_BOT_USER_TOKEN")
	viper.BindEnv("slack.app_token", "CADDIE_SLACK_APP_TOKEN", "SLACK_APP_TOKEN")

	viper.SetDefault("transport", TransportTelegram)
	viper.SetDefault("bot_name", "Caddie")
	viper.SetDefault("poll_timeout", 30)
	viper.SetDefault("metrics_port", 2112)
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")
	viper.SetDefault("glyphs.check", "✅")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile == "" {
		// No config file found; write one with the defaults so the deployment
		// has something to edit.
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if err := viper.SafeWriteConfig(); err != nil {
			if _, statErr := os.Stat("config.yaml"); os.IsNotExist(statErr) {
				fmt.Fprintf(os.Stderr, "Warning: Failed to create default config file: %v\n", err)
			}
		} else {
			fmt.Println("Created default configuration file: config.yaml")
		}
	}
}
