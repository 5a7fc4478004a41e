package main

import (
	"errors"
	"fmt"
	"os"

	app "github.com/ak7sky/routeset-calc/internal"
	"github.com/spf13/pflag"
)

func main() {
	if err := app.Run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", app.Name, err)
		os.Exit(1)
	}
}
