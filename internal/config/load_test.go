package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

// chdir mirrors testing.T.Chdir, which requires a Go 1.24 toolchain.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(dir) {
		dir, err = os.Getwd()
		if err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoad(t *testing.T) {
	chdir(t, t.TempDir())
	defer viper.Reset()

	t.Run("Defaults", func(t *testing.T) {
		viper.Reset()
		Load("")

		assert.Equal(t, TransportTelegram, viper.GetString("transport"))
		assert.Equal(t, "Caddie", viper.GetString("bot_name"))
		assert.Equal(t, 30, viper.GetInt("poll_timeout"))
		assert.Equal(t, 2112, viper.GetInt("metrics_port"))
		assert.Equal(t, "✅", viper.GetString("glyphs.check"))
		assert.False(t, viper.GetBool("verbose"))
	})

	t.Run("Default Config Generation", func(t *testing.T) {
		viper.Reset()
		os.Remove("config.yaml")

		Load("")

		_, err := os.Stat("config.yaml")
		assert.NoError(t, err, "a default config.yaml is written when none exists")
	})

	t.Run("Prefixed Env Overrides", func(t *testing.T) {
		viper.Reset()
		t.Setenv("CADDIE_TRANSPORT", "slack")
		t.Setenv("CADDIE_BOT_NAME", "Looper")

		Load("")
		assert.Equal(t, "slack", viper.GetString("transport"))
		assert.Equal(t, "Looper", viper.GetString("bot_name"))
	})

	t.Run("Conventional Token Names", func(t *testing.T) {
		viper.Reset()
		t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
		t.Setenv("SLACK_BOT_USER_TOKEN", "xoxb-1")
		t.Setenv("SLACK_APP_TOKEN", "xapp-1")

		Load("")
		assert.Equal(t, "123:abc", viper.GetString("telegram.token"))
		assert.Equal(t, "xoxb-1", viper.GetString("slack.bot_token"))
		assert.Equal(t, "xapp-1", viper.GetString("slack.app_token"))
	})
}
