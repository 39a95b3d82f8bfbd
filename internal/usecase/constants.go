package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultJobPayout is the payout assigned to generated nightly jobs until
	// pricing is negotiated per account.
	DefaultJobPayout = "150.00"

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// profileCacheKeyPrefix namespaces cached profile records.
	profileCacheKeyPrefix = "profile:"
)
