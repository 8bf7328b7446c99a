package main

import (
	"context"
	"os"

	"github.com/prguard/prguard/pkg/cli"
)

func main() {
	if err := cli.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
