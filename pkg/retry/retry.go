package retry

import (
	"time"

	backoff "github.com/cenkalti/backoff/v4"
)

const maxRetries = 3

// Do runs op with bounded exponential backoff on transient storage
// failures. Domain errors should be wrapped with Permanent so they
// surface immediately.
func Do(op func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 50 * time.Millisecond
	bo.MaxInterval = time.Second

	return backoff.Retry(op, backoff.WithMaxRetries(bo, maxRetries))
}

func Permanent(err error) error {
	return backoff.Permanent(err)
}
