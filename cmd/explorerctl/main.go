package main

import (
	"os"

	"accessexplorer/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
