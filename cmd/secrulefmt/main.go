package main

import (
	"os"

	"secrulelang/cmd/secrulefmt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
