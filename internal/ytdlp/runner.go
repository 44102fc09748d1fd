package ytdlp

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner executes the yt-dlp binary. It exists so the resolver, downloader
// and avatar resolver can be tested without spawning real subprocesses.
type Runner interface {
	// Run executes the tool with the given arguments and returns captured
	// stdout and stderr. Deadlines come from ctx; a non-zero exit is
	// returned as the error from exec.
	Run(ctx context.Context, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs the real binary via os/exec.
type ExecRunner struct {
	Binary string
}

func NewExecRunner(binary string) *ExecRunner {
	return &ExecRunner{Binary: binary}
}

func (r *ExecRunner) Run(ctx context.Context, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, r.Binary, args...)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}
