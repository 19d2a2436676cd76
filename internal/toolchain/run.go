// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
)

// Runner executes an external engine, streaming its stdout to w.
type Runner interface {
	Run(ctx context.Context, name string, args []string, stdout io.Writer) error
}

// ExecRunner is the production Runner backed by os/exec. Stderr is captured
// and appended to the returned error.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args []string, stdout io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("running %s: %w: %s", filepath.Base(name), err, msg)
		}
		return fmt.Errorf("running %s: %w", filepath.Base(name), err)
	}
	return nil
}
