//go:build unix

package sys

import (
	"os"
	"os/signal"
)

func notifyResize() (<-chan os.Signal, func()) {
	sigCh := make(chan os.Signal, sigsChanBufferSize)
	signal.Notify(sigCh, sigWINCH)
	return sigCh, func() { signal.Stop(sigCh) }
}
