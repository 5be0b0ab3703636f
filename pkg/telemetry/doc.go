// Package telemetry provides the lock-free data-sharing surface between
// the audio processing thread and a lower-rate consumer such as a UI.
//
// Every structure in this package follows a strict single-producer /
// single-consumer discipline: the audio callback is the only writer and
// exactly one non-audio goroutine is the only reader. Under that
// contract no operation blocks, allocates, or takes a lock, which keeps
// the producer side safe to call under a hard real-time deadline.
//
// Consumers observe writes with at most eventual consistency. A read
// may return a value that is stale by one producer cycle, but it never
// returns a torn scalar: each cross-thread cell is an independently
// atomic 32-bit float.
package telemetry
