package main

import (
	"context"
	"os"

	"github.com/oloBion/retip/internal/app"
)

func main() {
	os.Exit(app.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
