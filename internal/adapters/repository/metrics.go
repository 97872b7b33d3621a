package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/talentmatch/pkg/logger"
	"github.com/okian/talentmatch/pkg/metrics"
)

// observe records latency for one store operation. NotFound is an answer, not a failure.
func observe(driver, op string, start time.Time, err error) {
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	metrics.RecordStoreOperation(driver, op, float64(time.Since(start).Nanoseconds())/1e6, err)
}

// poolReporter publishes the collection sizes on a ticker until stopped.
type poolReporter struct {
	wg       sync.WaitGroup
	stopOnce sync.Once
	stopChan chan struct{}
}

func startPoolReporter(ctx context.Context, set *settings, counts func(context.Context) (int, int, error)) *poolReporter {
	p := &poolReporter{stopChan: make(chan struct{})}
	report := func() {
		talents, requests, err := counts(ctx)
		if err != nil {
			set.logger.Warn(ctx, "failed to count records", logger.Error(err))
			return
		}
		metrics.UpdatePoolSize(CollectionTalents, talents)
		metrics.UpdatePoolSize(CollectionRequests, requests)
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(set.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-p.stopChan:
				return
			case <-ticker.C:
				report()
			}
		}
	}()
	return p
}

func (p *poolReporter) stop() {
	p.stopOnce.Do(func() { close(p.stopChan) })
	p.wg.Wait()
}
