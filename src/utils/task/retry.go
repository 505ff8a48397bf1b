package task

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Implement operation retrying
type Retry struct {
	ctx                context.Context
	maxElapsedTime     time.Duration
	maxInterval        time.Duration
	acceptableDuration time.Duration
	onError            func(err error, isDurationAcceptable bool) error
}

func NewRetry() *Retry {
	return new(Retry)
}

func (self *Retry) WithMaxElapsedTime(maxElapsedTime time.Duration) *Retry {
	self.maxElapsedTime = maxElapsedTime
	return self
}

func (self *Retry) WithMaxInterval(maxInterval time.Duration) *Retry {
	self.maxInterval = maxInterval
	return self
}

// Retrying for longer than this gets signalled to the OnError callback
func (self *Retry) WithAcceptableDuration(acceptableDuration time.Duration) *Retry {
	self.acceptableDuration = acceptableDuration
	return self
}

func (self *Retry) WithContext(ctx context.Context) *Retry {
	self.ctx = ctx
	return self
}

// Callback may turn the error into backoff.Permanent to stop retrying
func (self *Retry) WithOnError(v func(err error, isDurationAcceptable bool) error) *Retry {
	self.onError = v
	return self
}

func (self *Retry) Run(f func() error) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = self.maxElapsedTime
	if self.maxInterval > 0 {
		b.MaxInterval = self.maxInterval
	}

	startedAt := time.Now()

	wrapped := func() error {
		err := f()
		if err == nil {
			return nil
		}

		if self.onError != nil {
			isDurationAcceptable := self.acceptableDuration <= 0 || time.Since(startedAt) < self.acceptableDuration
			err = self.onError(err, isDurationAcceptable)
		}
		return err
	}

	ctx := self.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	return backoff.Retry(wrapped, backoff.WithContext(b, ctx))
}
