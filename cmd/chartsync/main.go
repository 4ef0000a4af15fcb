package main

import (
	"os"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/exitcode"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UsageError)
	}
}
