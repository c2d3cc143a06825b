// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package scaffold

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/bitfield/script"
)

// shellRunner executes one shell command and returns its combined
// output, the common contract both the direct-host runner and a
// Sandbox satisfy, so every scaffolding agent can run either isolated
// or not without caring which.
type shellRunner interface {
	Run(ctx context.Context, command string) (string, error)
}

// hostRunner runs commands directly on the host via bitfield/script,
// used when no Sandbox isolation is configured.
type hostRunner struct{}

func (hostRunner) Run(_ context.Context, command string) (string, error) {
	return script.Exec(command).String()
}

// runnerFor picks sandbox as the shellRunner when non-nil, otherwise
// falls back to running directly on the host.
func runnerFor(sandbox *Sandbox) shellRunner {
	if sandbox != nil {
		return sandbox
	}
	return hostRunner{}
}

// shellQuote wraps s in single quotes, escaping any embedded single
// quote, so a path or commit message sourced from workflow input data
// can never break out of the surrounding shell command.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// writeFileCommand base64-encodes content and decodes it back into path
// on the far side of the shell, sidestepping the quoting hazards of
// embedding arbitrary template text inside a heredoc.
func writeFileCommand(path, content string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(content))
	return fmt.Sprintf("echo %s | base64 -d > %s", shellQuote(encoded), shellQuote(path))
}

// mkdirCommand builds a quoted mkdir -p invocation for path.
func mkdirCommand(path string) string {
	return fmt.Sprintf("mkdir -p %s", shellQuote(path))
}

// stringOr reads key from ctx as a string, falling back to def if the
// key is absent or not a string.
func stringOr(ctx map[string]any, key, def string) string {
	if v, ok := ctx[key].(string); ok && v != "" {
		return v
	}
	return def
}
