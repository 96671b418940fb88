package main

import (
	"github.com/harborlog/harborlog/pkg/cli"
	"github.com/harborlog/harborlog/pkg/util/console"
)

func main() {
	cmd, err := cli.NewRootCommand()
	if err != nil {
		console.Fatalf("%s", err)
	}

	if err = cmd.Execute(); err != nil {
		console.Fatalf("%s", err)
	}
}
