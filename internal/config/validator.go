package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// ValidateConfig checks the loaded configuration values and returns an error
// listing everything that is invalid. Call it after Load.
func ValidateConfig() error {
	var errs []string

	switch tr := viper.GetString("transport"); tr {
	case TransportTelegram, TransportSlack:
	default:
		errs = append(errs, fmt.Sprintf("transport must be %q or %q, got: %q",
			TransportTelegram, TransportSlack, tr))
	}

	if viper.IsSet("metrics_port") {
		port := viper.GetInt("metrics_port")
		if port < 1 || port > 65535 {
			errs = append(errs, fmt.Sprintf("metrics_port must be between 1 and 65535, got: %d", port))
		}
	}

	if viper.IsSet("poll_timeout") {
		timeout := viper.GetInt("poll_timeout")
		if timeout <= 0 {
			errs = append(errs, fmt.Sprintf("poll_timeout must be positive, got: %d", timeout))
		}
	}

	if viper.GetString("bot_name") == "" {
		errs = append(errs, "bot_name must not be empty")
	}

	if len(errs) > 0 {
		msg := errs[0]
		for i := 1; i < len(errs); i++ {
			msg += "\n  " + errs[i]
		}
		return fmt.Errorf("configuration validation failed:\n  %s", msg)
	}
	return nil
}

// ValidateAndExit validates the configuration and exits non-zero on failure.
func ValidateAndExit() {
	if err := ValidateConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
