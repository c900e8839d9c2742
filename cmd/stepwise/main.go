package main

import (
	"fmt"
	"io"
	"os"

	"github.com/stepwise/stepwise/pkg/cli"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "🧱 %v\n", err)
		os.Exit(1)
	}
}

// run executes the command line against the given writers
func run(outW, errW io.Writer, args []string) error {
	cfg := cli.NewConfig()
	cfg.Version = version

	return cli.NewCLIWithOutput(cfg, outW, errW).Execute(args)
}
