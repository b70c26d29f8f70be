package cfg

import (
	"testing"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKafkaCfg(t *testing.T) {
	t.Run("disabled without brokers", func(t *testing.T) {
		t.Setenv("KAFKA_BROKERS", "")

		kafkaCfg, err := loadKafkaCfg()
		require.NoError(t, err)
		assert.False(t, kafkaCfg.Enabled)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
		t.Setenv("KAFKA_MAX_RETRIES", "")

		kafkaCfg, err := loadKafkaCfg()
		require.NoError(t, err)
		assert.True(t, kafkaCfg.Enabled)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, kafkaCfg.Brokers)
		assert.Equal(t, 3, kafkaCfg.MaxRetries)
	})

	t.Run("negative retries rejected", func(t *testing.T) {
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092")
		t.Setenv("KAFKA_MAX_RETRIES", "-1")

		_, err := loadKafkaCfg()
		require.Error(t, err)
		assert.ErrorIs(t, err, e.ErrIncorrectEnvVariable)
	})

	t.Run("non-numeric retries rejected", func(t *testing.T) {
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092")
		t.Setenv("KAFKA_MAX_RETRIES", "many")

		_, err := loadKafkaCfg()
		assert.ErrorIs(t, err, e.ErrIncorrectEnvVariable)
	})
}
