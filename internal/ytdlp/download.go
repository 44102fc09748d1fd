package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/shlex"
	"github.com/rs/zerolog"
)

// ErrSyncFailed is returned when a download invocation exits non-zero or
// exceeds the wall-time ceiling.
var ErrSyncFailed = errors.New("ytdlp: download failed")

// Downloader runs the actual fetch/update step for a subscription URL.
// Arguments come from the user-editable parameter string; the URL is always
// the final positional argument.
type Downloader struct {
	runner  Runner
	timeout time.Duration
	logger  zerolog.Logger
}

func NewDownloader(runner Runner, timeout time.Duration, logger zerolog.Logger) *Downloader {
	return &Downloader{
		runner:  runner,
		timeout: timeout,
		logger:  logger,
	}
}

// Download invokes the tool with the parsed parameter string plus the URL.
// Output from both streams is logged line by line once the process exits,
// mirroring how the tool itself reports progress in batch mode.
func (d *Downloader) Download(ctx context.Context, parameters, url string) error {
	args, err := shlex.Split(parameters)
	if err != nil {
		return fmt.Errorf("%w: bad parameter string: %v", ErrSyncFailed, err)
	}
	args = append(args, url)

	d.logger.Info().
		Str("url", url).
		Int("args", len(args)).
		Msg("starting download invocation")

	runCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	stdout, stderr, runErr := d.runner.Run(runCtx, args...)

	d.logLines(url, "stdout", stdout, zerolog.InfoLevel)
	d.logLines(url, "stderr", stderr, zerolog.WarnLevel)

	if runErr != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: timeout after %s", ErrSyncFailed, d.timeout)
		}
		return fmt.Errorf("%w: %v", ErrSyncFailed, runErr)
	}

	d.logger.Info().Str("url", url).Msg("download invocation completed")
	return nil
}

func (d *Downloader) logLines(url, stream string, output []byte, level zerolog.Level) {
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			d.logger.WithLevel(level).
				Str("url", url).
				Str("stream", stream).
				Msg(line)
		}
	}
}
