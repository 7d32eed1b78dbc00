package util

import "runtime"

// GetOptimalPoolSize returns the pool size used for CGO-bound parsing work.
//
// Formula: min(max(runtime.NumCPU() * 2, 4), 32)
//
// Tree-sitter parsing spends most of its time inside CGO calls, so 2x the
// core count keeps goroutines runnable while others are blocked in C. The
// floor of 4 preserves some parallelism on small machines; the cap of 32
// bounds per-language parser memory.
func GetOptimalPoolSize() int {
	size := runtime.NumCPU() * 2
	if size < 4 {
		size = 4
	}
	if size > 32 {
		size = 32
	}
	return size
}

// GetOptimalPoolSizeWithOverride returns the override when positive,
// otherwise GetOptimalPoolSize(). Used for testing and tuning.
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}
