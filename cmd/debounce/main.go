package main

import (
	"fmt"
	"os"

	"github.com/romdo/go-debounce/v2/internal/cli"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	err := cli.Execute(
		os.Args,
		cli.Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr},
		cli.BuildArgs{Version: version, Commit: commit, Date: date},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "debounce: %s\n", err.Error())
		os.Exit(1)
	}
}
