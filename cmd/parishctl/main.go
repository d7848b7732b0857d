package main

import (
	"os"

	"github.com/spacecadet3008/Kristo-mfalme/cmd/parishctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
