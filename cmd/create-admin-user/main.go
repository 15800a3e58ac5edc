// Command create-admin-user provisions an administrator account in the
// configured user store.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"example.com/adminctl/internal/cmd/createadmin"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := createadmin.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
