// Package combined provides benchmarks that drive the queues together
// with the rest of the stack.
//
// These benchmarks are more representative of real-world performance
// than the isolated micro-benchmarks in package queue: they include
// lock contention between many producers, metrics decoration and the
// full workload harness.
package combined
