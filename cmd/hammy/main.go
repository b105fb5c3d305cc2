// cmd/hammy/main.go
package main

import (
	"os"

	"github.com/hammyapp/hammy/internal/cli"
	"github.com/hammyapp/hammy/internal/logutil"
)

func main() {
	if err := cli.Execute(); err != nil {
		logutil.Errorf("%v", err)
		os.Exit(1)
	}
}
