package kafka

import (
	"context"
	"errors"
	"strings"

	"github.com/segmentio/kafka-go"
)

var retryablePhrases = []string{
	"connection refused",
	"i/o timeout",
	"network is unreachable",
	"broker not available",
	"connection reset",
	"broken pipe",
	"no such host",
}

// isRetryableError определяет, имеет ли смысл повторить запись.
func isRetryableError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var kafkaErr kafka.Error
	if errors.As(err, &kafkaErr) {
		return kafkaErr.Temporary()
	}

	errStr := strings.ToLower(err.Error())
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}

	return false
}
