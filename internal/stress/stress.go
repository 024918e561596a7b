package stress

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alex65536/tsrand/internal/randsrc"
)

type Options struct {
	// Number of goroutines sharing the source. Zero means the number of CPUs.
	Workers int `toml:"workers"`
	// Sampling calls per goroutine. Zero means default.
	Calls int `toml:"calls"`
	// How often the watcher is notified. Zero means default.
	ReportInterval time.Duration `toml:"report-interval"`
}

func (o *Options) Validate() error {
	if o.Workers < 0 {
		return fmt.Errorf("negative workers")
	}
	if o.Calls < 0 {
		return fmt.Errorf("negative calls")
	}
	if o.ReportInterval < 0 {
		return fmt.Errorf("negative report interval")
	}
	return nil
}

func (o *Options) FillDefaults() {
	if o.Workers == 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Calls == 0 {
		o.Calls = 100_000
	}
	if o.ReportInterval == 0 {
		o.ReportInterval = 100 * time.Millisecond
	}
}

type Progress struct {
	Done    int64
	Total   int64
	Elapsed time.Duration
}

type Watcher func(p Progress)

type Result struct {
	// Values produced by successful sampling calls.
	Count int64
	// Workers * Calls.
	Expected int64
	Elapsed  time.Duration
}

func (r Result) Complete() bool {
	return r.Count == r.Expected
}

func (r Result) Rate() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Count) / r.Elapsed.Seconds()
}

// sample performs the i-th call of a worker. Calls rotate over every sampling method.
func sample(src randsrc.Source, i int, buf []byte) error {
	var err error
	switch i % 6 {
	case 0:
		_, err = src.Int()
	case 1:
		_, err = src.IntN(1 << 40)
	case 2:
		_, err = src.IntRange(-1000, 1000)
	case 3:
		_, err = src.Float64()
	case 4:
		_, err = src.Float64Range(-1e6, 1e6)
	case 5:
		_, err = src.Read(buf)
	default:
		panic("must not happen")
	}
	return err
}

// Run hammers src from o.Workers goroutines at once. It stops at the first sampling error or
// when ctx is done; the partial result is returned in both cases.
func Run(ctx context.Context, log *slog.Logger, src randsrc.Source, o Options, watcher Watcher) (Result, error) {
	if err := o.Validate(); err != nil {
		return Result{}, fmt.Errorf("bad options: %w", err)
	}
	o.FillDefaults()

	total := int64(o.Workers) * int64(o.Calls)
	var done atomic.Int64
	start := time.Now()
	report := func() {
		if watcher != nil {
			watcher(Progress{Done: done.Load(), Total: total, Elapsed: time.Since(start)})
		}
	}

	log.Info("starting stress run",
		slog.Int("workers", o.Workers),
		slog.Int("calls", o.Calls),
	)

	stopReport := make(chan struct{})
	reportDone := make(chan struct{})
	go func() {
		defer close(reportDone)
		ticker := time.NewTicker(o.ReportInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				report()
			case <-stopReport:
				return
			}
		}
	}()

	eg, gctx := errgroup.WithContext(ctx)
	for w := range o.Workers {
		eg.Go(func() error {
			buf := make([]byte, 16)
			for i := range o.Calls {
				if i%256 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				if err := sample(src, w+i, buf); err != nil {
					return fmt.Errorf("worker %v call %v: %w", w, i, err)
				}
				done.Add(1)
			}
			return nil
		})
	}
	err := eg.Wait()
	close(stopReport)
	<-reportDone
	report()

	res := Result{
		Count:    done.Load(),
		Expected: total,
		Elapsed:  time.Since(start),
	}
	if err != nil {
		return res, err
	}
	log.Info("stress run finished",
		slog.Int64("count", res.Count),
		slog.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}
