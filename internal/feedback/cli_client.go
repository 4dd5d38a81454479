package feedback

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CLIClient runs review prompts through a locally installed claude CLI
// instead of the API — useful for development against an existing Claude
// plan, with no API key and no per-token charges. The review prompt goes
// over stdin; the single-turn text reply is the raw feedback the extractor
// parses.
type CLIClient struct {
	cliPath string
	model   string // optional; CLI default when empty
}

func NewCLIClient(cliPath, model string) *CLIClient {
	return &CLIClient{cliPath: cliPath, model: model}
}

func (c *CLIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	args := []string{
		"--print",
		"--output-format", "text",
		"--system-prompt", systemPrompt,
		"--max-turns", "1",
	}
	if c.model != "" {
		args = append(args, "--model", c.model)
	}

	cmd := exec.CommandContext(ctx, c.cliPath, args...)
	cmd.Stdin = strings.NewReader(userPrompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("claude CLI error: %w\nstderr: %s", err, stderr.String())
	}

	feedbackText := strings.TrimSpace(stdout.String())
	if feedbackText == "" {
		return nil, fmt.Errorf("claude CLI returned empty feedback")
	}

	// Token usage is not reported in text output mode.
	return &LLMResponse{Content: feedbackText}, nil
}
