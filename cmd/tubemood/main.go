package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("[Main] tubemood exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
