package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rsksmart/safekit/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if _, err := cli.ExecuteC(context.Background(), rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
