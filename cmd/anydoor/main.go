package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/soyeahso/anydoor/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		if !errors.Is(err, cli.ErrReported) {
			fmt.Fprintf(os.Stderr, "anydoor: %v\n", err)
		}
		os.Exit(1)
	}
}
