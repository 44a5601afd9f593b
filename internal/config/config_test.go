package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avrek/wb-radar/internal/config"
)

func TestMustLoad(t *testing.T) {
	t.Run("error - empty required env variable", func(t *testing.T) {
		t.Setenv("WR_TELEGRAM_TOKEN", "")

		assert.PanicsWithError(t, config.ErrEmptyToken.Error(), func() {
			config.MustLoad()
		})
	})

	t.Run("success", func(t *testing.T) {
		t.Setenv("WR_ENV", "local")
		t.Setenv("WR_TELEGRAM_TOKEN", "telegramToken")
		t.Setenv("WR_STORAGE_PATH", "some/path/to/db")
		t.Setenv("WR_COMPARE_TTL", "2h")
		t.Setenv("WR_FETCH_CONCURRENCY", "8")

		cfg := config.MustLoad()

		assert.Equal(t, "local", cfg.Env)
		assert.Equal(t, 15*time.Second, cfg.Tg.Timeout)
		assert.Equal(t, "telegramToken", cfg.Tg.Token)
		assert.Equal(t, "some/path/to/db", cfg.StoragePath)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, "https://card.wb.ru", cfg.Card.BaseURL)
		assert.Equal(t, 10*time.Second, cfg.Card.Timeout)
		assert.InEpsilon(t, 3.0, cfg.Card.RPS, 1e-9)
		assert.Equal(t, 2*time.Hour, cfg.Compare.TTL)
		assert.Equal(t, 8, cfg.Compare.FetchConcurrency)
		assert.Empty(t, cfg.Compare.RefreshSchedule)
	})
}
