package main

import (
	"fmt"
	"os"

	"github.com/JonMunkholm/tabconv/internal/cli"
)

func main() {
	app := cli.New()
	if err := cli.NewRootCmd(app).Execute(); err != nil {
		fmt.Fprintf(app.ErrWriter, "Error: %v\n", err)
		os.Exit(1)
	}
}
