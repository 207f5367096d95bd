package main

import (
	"os"

	"weekendly/internal/commands"
	appLog "weekendly/internal/log"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		appLog.Error("command failed", err)
		os.Exit(1)
	}
}
