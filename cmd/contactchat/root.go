package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/mostafamoumen/contactchat/internal/config"
	"github.com/mostafamoumen/contactchat/pkg/log"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "contactchat",
	Short: "Contact-extraction chat service",
	Long:  `A chat service that extracts contact names and phone numbers from free text and answers lookups against the stored contacts.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}
