package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/complycloud/chatbridge/internal/config"
	"github.com/complycloud/chatbridge/internal/logging"
)

var (
	cfgFile   string
	debugFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "chatbridge",
	Short: "Conversational front-end for MCP tool servers",
	Long: `Chatbridge connects a local LLM to a tool-providing MCP server over
stdio. Ask questions in natural language; when answering needs a tool,
the LLM requests it, chatbridge invokes it, and the result is narrated
back to you.`,
	Version: "1.0.0",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./chatbridge.yaml, then ~/.chatbridge.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
}

// setup loads configuration and builds the logger shared by commands.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.NewLoader().Load(cfgFile)
	if err != nil {
		return config.Config{}, nil, err
	}

	level := cfg.Log.Level
	if debugFlag {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.Log.Path)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}
