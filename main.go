package main

import (
	"fmt"
	"os"

	"github.com/AnyUserName/pixmap-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pixmap: %v\n", err)
		os.Exit(1)
	}
}
