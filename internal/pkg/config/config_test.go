//go:build unit

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults with memory driver", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORAGE_DRIVER", "memory")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 30, cfg.Booking.SlotGranularity)
		assert.Equal(t, 3*time.Second, cfg.Booking.LockTimeout)
		assert.Equal(t, "America/Sao_Paulo", cfg.Booking.TimeZone)
		assert.True(t, cfg.Booking.UsesMemoryStorage())
		assert.Equal(t, "@every 5s", cfg.Outbox.Schedule)
		assert.Empty(t, cfg.Kafka.Brokers)
	})

	t.Run("postgres driver requires db credentials", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORAGE_DRIVER", "postgres")
		t.Setenv("DB_USER", "")
		t.Setenv("DB_NAME", "")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "DB_USER and DB_NAME")
	})

	t.Run("unknown driver is rejected", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORAGE_DRIVER", "sqlite")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "unknown STORAGE_DRIVER")
	})

	t.Run("unknown booking timezone is rejected", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORAGE_DRIVER", "memory")
		t.Setenv("BOOKING_TIMEZONE", "America/Sao_Paolo")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "BOOKING_TIMEZONE")
	})

	t.Run("empty booking timezone is rejected", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORAGE_DRIVER", "memory")
		t.Setenv("BOOKING_TIMEZONE", "")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "BOOKING_TIMEZONE")
	})

	t.Run("kafka brokers split on comma", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORAGE_DRIVER", "memory")
		t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	})
}

func TestBookingConfigLocation(t *testing.T) {
	assert.Equal(t, time.UTC, BookingConfig{TimeZone: "Not/AZone"}.Location())
	assert.Equal(t, "America/Sao_Paulo", BookingConfig{TimeZone: "America/Sao_Paulo"}.Location().String())
}
