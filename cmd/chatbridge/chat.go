package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/complycloud/chatbridge"
	"github.com/complycloud/chatbridge/internal/config"
	"github.com/complycloud/chatbridge/mcp"
	"github.com/complycloud/chatbridge/providers"
)

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")). // cyan
			Bold(true)

	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")) // magenta

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")) // gray

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")). // red
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2")). // green
			Bold(true)
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive console conversation",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := preflight(cfg); err != nil {
		return err
	}

	fmt.Println(dimStyle.Render("Connecting to MCP server..."))

	orch, closeSession, err := connect(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer closeSession()

	printBanner(orch.Catalog())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(userStyle.Render("You: "))
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(input) {
		case "exit", "quit", "bye":
			fmt.Println(dimStyle.Render("Goodbye!"))
			return nil
		case "":
			continue
		}

		answer, err := orch.Submit(cmd.Context(), input)
		if err != nil {
			fmt.Println(errorStyle.Render("Error: " + err.Error()))
			continue
		}
		fmt.Println(assistantStyle.Render("Assistant: ") + answer)
		fmt.Println()
	}
	return scanner.Err()
}

// connect starts the backend process, initializes the MCP session and
// builds the orchestrator. The returned func tears the session down.
func connect(ctx context.Context, cfg config.Config, logger *zap.Logger) (*chatbridge.Orchestrator, func(), error) {
	provider, err := newProvider(cfg.LLM)
	if err != nil {
		return nil, nil, err
	}

	transport, err := mcp.StartCommand(ctx, cfg.MCP.Command, cfg.MCP.Args,
		mcp.WithTransportLogger(logger))
	if err != nil {
		return nil, nil, fmt.Errorf("start MCP server: %w", err)
	}

	session := mcp.NewSession(transport, mcp.WithLogger(logger))

	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := session.Initialize(initCtx); err != nil {
		_ = session.Close()
		return nil, nil, fmt.Errorf("initialize MCP session: %w", err)
	}

	orch, err := chatbridge.NewOrchestrator(initCtx, provider, session,
		chatbridge.WithLogger(logger))
	if err != nil {
		_ = session.Close()
		return nil, nil, err
	}
	return orch, func() { _ = session.Close() }, nil
}

func newProvider(cfg config.LLMConfig) (chatbridge.ChatProvider, error) {
	opts := providers.Options{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
	}
	if cfg.Temperature != 0 {
		opts.Temperature = &cfg.Temperature
	}
	if cfg.MaxTokens != 0 {
		opts.MaxTokens = &cfg.MaxTokens
	}
	return providers.New(cfg.Provider, cfg.Model, opts)
}

func printBanner(catalog *chatbridge.Catalog) {
	fmt.Println(successStyle.Render(fmt.Sprintf("Connected! %d tools available.", catalog.Len())))
	fmt.Println("Tools loaded:")
	for _, tool := range catalog.Tools() {
		fmt.Println("  - " + tool.Name)
	}
	sep := strings.Repeat("=", 60)
	fmt.Println(dimStyle.Render(sep))
	fmt.Println("You can now ask questions about your AWS cloud compliance!")
	fmt.Println("Examples:")
	fmt.Println("  - 'Check SOC2 compliance for storage resources'")
	fmt.Println("  - 'List my S3 buckets'")
	fmt.Println("  - 'What compliance standards do you support?'")
	fmt.Println("Type 'exit' or 'quit' to end the conversation.")
	fmt.Println(dimStyle.Render(sep))
	fmt.Println()
}
