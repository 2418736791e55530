package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gowatcharr",
	Short: "Personal movie and TV show watchlist tracker",
	Long: `gowatcharr tracks the movies and TV shows you want to watch or have
watched, records per-watch sessions and exposes aggregate statistics
over your viewing history.

Configuration is read from environment variables or a .env file in the
working directory.`,
	RunE: runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
