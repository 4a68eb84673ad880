// Command safering exercises the mutex-guarded ring buffer.
//
// Usage:
//
//	go run ./cmd/safering demo
//	go run ./cmd/safering run --producers 5 --consumers 5 --per-producer 10 --capacity 100 --phased
//	go run ./cmd/safering bench -n 10000000 --size 1024
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
