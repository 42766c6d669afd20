package main

import (
	"os"

	"github.com/go-scaffold/go-scaffold/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(app.ExitCode(err))
	}
}
