package main

import (
	"os"

	"github.com/goliatone/go-buildergen/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
