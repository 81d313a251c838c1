// Package policy holds the pure limit and fee rules applied by the
// transaction engine. None of these functions touch the store.
package policy

// Fee returns min(floor(amount*rate), cap). Amounts are in the minor
// currency unit, so the float product is truncated, never rounded up.
func Fee(amount int64, rate float64, cap int64) int64 {
	fee := int64(float64(amount) * rate)
	if fee > cap {
		return cap
	}
	return fee
}

// WithinBounds reports whether amount falls inside the configured
// per-transaction range, inclusive on both ends.
func WithinBounds(amount, min, max int64) bool {
	return amount >= min && amount <= max
}

// DailyLimitOK reports whether a new movement of amount, on top of priorSum
// already moved today, stays within the daily limit.
func DailyLimitOK(priorSum, amount, limit int64) bool {
	return priorSum+amount <= limit
}
