package main

import (
	"context"
	"os"

	"github.com/Astemirdum/library-view/view/cli"
	"github.com/charmbracelet/fang"
)

const version = "0.1.0"

// @title library-view
// @version 1.0
// @description View server of the neighborhood library client.
// @host localhost:8892
// @BasePath /
func main() {
	if err := fang.Execute(
		context.Background(),
		cli.NewRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
