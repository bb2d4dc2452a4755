package mdtidy

import "runtime"

// Worker sizing constants.
const (
	// MinWorkers ensures at least one file is processed at a time.
	MinWorkers = 1

	// MaxWorkers caps the automatic worker count. Formatting is cheap and
	// mostly waits on disk, so more workers rarely help.
	MaxWorkers = 8

	// cpuDivisor leaves headroom for the rest of the system.
	cpuDivisor = 2
)

// ResolveWorkers determines how many files are formatted concurrently.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by CLIs.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers.
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
