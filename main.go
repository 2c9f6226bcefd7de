package main

import (
	"context"
	"fmt"
	"os"

	"github.com/connorhough/fecho/cmd"
	"github.com/connorhough/fecho/internal/fecho"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "fecho: %v\n", err)
		os.Exit(fecho.ExitCode(err))
	}
}
