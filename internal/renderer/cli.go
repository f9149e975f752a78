// Package renderer shells out to the local render CLI to produce an MP4
// from a composition and a JSON props payload.
package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"cardrender/internal/pkg/logger"
)

// DefaultTimeout bounds one CLI render to respect host platform limits.
const DefaultTimeout = 10 * time.Minute

// Config holds CLI renderer configuration.
type Config struct {
	// Bin is the executable, e.g. "npx".
	Bin string
	// BaseArgs precede the entry point, e.g. ["remotion", "render"].
	BaseArgs []string
	// Entry is the composition bundle entry point.
	Entry   string
	Timeout time.Duration
	Log     *logger.Logger
}

type CLI struct {
	bin      string
	baseArgs []string
	entry    string
	timeout  time.Duration
	log      *logger.Logger
}

func NewCLI(cfg Config) *CLI {
	log := cfg.Log
	if log == nil {
		log = logger.NewDefault()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &CLI{
		bin:      cfg.Bin,
		baseArgs: cfg.BaseArgs,
		entry:    cfg.Entry,
		timeout:  timeout,
		log:      log.WithComponent("renderer"),
	}
}

// Render writes props to a temp file, invokes the CLI, and leaves the MP4
// at outputPath. The command runs under the configured timeout; on failure
// the error carries the tail of the CLI output.
func (c *CLI) Render(ctx context.Context, compositionID string, props any, outputPath string) error {
	propsJSON, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("encode props: %w", err)
	}

	propsFile, err := os.CreateTemp("", "render-props-*.json")
	if err != nil {
		return fmt.Errorf("create props file: %w", err)
	}
	defer os.Remove(propsFile.Name())

	if _, err := propsFile.Write(propsJSON); err != nil {
		propsFile.Close()
		return fmt.Errorf("write props file: %w", err)
	}
	if err := propsFile.Close(); err != nil {
		return fmt.Errorf("close props file: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := c.buildArgs(compositionID, outputPath, propsFile.Name())
	c.log.Info("invoking render CLI", "bin", c.bin, "composition", compositionID)

	start := time.Now()
	cmd := exec.CommandContext(runCtx, c.bin, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("render timed out after %s", c.timeout)
		}
		return fmt.Errorf("render CLI failed: %w: %s", err, tail(output, 2000))
	}

	c.log.Info("render CLI finished",
		"composition", compositionID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (c *CLI) buildArgs(compositionID, outputPath, propsPath string) []string {
	args := make([]string, 0, len(c.baseArgs)+4)
	args = append(args, c.baseArgs...)
	if c.entry != "" {
		args = append(args, c.entry)
	}
	args = append(args, compositionID, outputPath, "--props="+propsPath)
	return args
}

// tail keeps the last n bytes of CLI output for error messages.
func tail(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
