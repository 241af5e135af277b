// Command buildergen generates fluent builders for Go structs from Go source,
// YAML struct schemas or OpenAPI documents.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(newApp()).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "buildergen:", err)
		stop()
		os.Exit(1)
	}
}
