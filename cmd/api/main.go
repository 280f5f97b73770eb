package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/cardboard/core/cmd/api/commands"
)

// @title Cardboard API
// @version 1.0
// @description Dashboard card service: typed, ordered, configurable cards and reusable templates.

// @contact.name Cardboard Maintainers
// @contact.url https://github.com/cardboard/core

// @license.name MIT

// @host localhost:3000
// @BasePath /api/v1

func main() {
	rootCmd := &cobra.Command{
		Use:           "cardboard",
		Short:         "Cardboard API Server",
		Long:          `Cardboard stores dashboard cards (text, images, links, stats, weather, todo lists, charts and custom content) with their per-type configuration, order and templates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewTemplatesCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
