package utils

import (
	"time"

	"github.com/nftbazaar/bazaar"
)

// Logging records the duration and outcome of every operation
// passing through the stack.
type Logging struct{}

var _ bazaar.Decorator = Logging{}

// NewLogging returns the logging decorator.
func NewLogging() Logging {
	return Logging{}
}

// Check logs at debug level on success, error level on failure.
func (r Logging) Check(ctx bazaar.Context, store bazaar.KVStore, tx bazaar.Tx, next bazaar.Checker) (*bazaar.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, resLog, err, true)
	return res, err
}

// Deliver logs at info level on success, error level on failure.
func (r Logging) Deliver(ctx bazaar.Context, store bazaar.KVStore, tx bazaar.Tx, next bazaar.Deliverer) (*bazaar.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, resLog, err, false)
	return res, err
}

// logDuration emits one entry with the elapsed time in microseconds
func logDuration(ctx bazaar.Context, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := bazaar.GetLogger(ctx).With("duration", delta/time.Microsecond)

	if err != nil {
		logger = logger.With("err", err)
		logger.Error(msg)
		return
	}

	// an empty message still carries the duration field
	if lowPrio {
		logger.Debug(msg)
	} else {
		logger.Info(msg)
	}
}
