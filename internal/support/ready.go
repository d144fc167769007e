package support

import (
	"context"
	"net"
	"time"

	"github.com/pkg/errors"
)

// ReadyPollInterval is the delay between two connection attempts while
// waiting for the server.
const ReadyPollInterval = 250 * time.Millisecond

// WaitReady blocks until addr accepts TCP connections or ctx is done.
func WaitReady(ctx context.Context, addr string) error {
	var d net.Dialer
	ticker := time.NewTicker(ReadyPollInterval)
	defer ticker.Stop()

	for {
		attempt, cancel := context.WithTimeout(ctx, time.Second)
		conn, err := d.DialContext(attempt, "tcp", addr)
		cancel()
		if err == nil {
			_ = conn.Close()
			return nil
		}

		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "%s not ready", addr)
		case <-ticker.C:
		}
	}
}
