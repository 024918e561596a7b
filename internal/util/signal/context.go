package signal

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
)

// NotifyContext returns a context that is canceled on the first of sig. A second signal
// terminates the process immediately.
func NotifyContext(ctx context.Context, log *slog.Logger, sig ...os.Signal) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, sig...)

	go func() {
		select {
		case s := <-sigCh:
			log.Info("interrupted, stopping (repeat to force exit)", slog.String("signal", s.String()))
			cancel()
		case <-ctx.Done():
			return
		}
		<-sigCh
		os.Exit(1)
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}
