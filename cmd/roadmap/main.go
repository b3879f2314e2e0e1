package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Vamap91/ROADMAP/cmd/roadmap/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "roadmap",
		Short: "Roadmap project timeline server",
		Long:  `Roadmap records projects with a schedule and an owner, persists them to a CSV file, and serves the timeline dashboard API.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewSeedCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
