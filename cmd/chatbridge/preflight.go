package main

import (
	"fmt"
	"net/http"
	"os/exec"
	"strings"
	"time"

	"github.com/complycloud/chatbridge/internal/config"
	"github.com/complycloud/chatbridge/providers"
)

// preflight verifies the environment before connecting: the local LLM
// endpoint must answer and, when the backend runs inside Docker, the
// container must be up. Hosted providers skip the endpoint probe.
func preflight(cfg config.Config) error {
	if cfg.LLM.Provider == "ollama" {
		if err := checkOllama(cfg.LLM.BaseURL); err != nil {
			return fmt.Errorf("Ollama is not running, start it with 'ollama serve': %w", err)
		}
	}
	if cfg.MCP.Command == "docker" && cfg.MCP.Container != "" {
		if err := checkContainer(cfg.MCP.Container); err != nil {
			return fmt.Errorf("MCP server container is not running, start it with 'docker-compose up -d': %w", err)
		}
	}
	return nil
}

func checkOllama(baseURL string) error {
	if baseURL == "" {
		baseURL = providers.DefaultOllamaBaseURL
	}
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(strings.TrimSuffix(baseURL, "/") + "/models")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("endpoint returned %s", resp.Status)
	}
	return nil
}

func checkContainer(name string) error {
	out, err := exec.Command("docker", "ps", "--filter", "name="+name, "--format", "{{.Names}}").Output()
	if err != nil {
		return fmt.Errorf("docker ps: %w", err)
	}
	if !strings.Contains(string(out), name) {
		return fmt.Errorf("container %q not found in docker ps output", name)
	}
	return nil
}
