package recognition

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/macrolens/capture/internal/domain"
)

// Runner lets us stub external commands in tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands on the host
type ExecRunner struct {
	Logger *zap.Logger
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	dur := time.Since(start)

	if err != nil {
		logger.Debug("exec failed",
			zap.String("cmd", name),
			zap.String("args", strings.Join(args, " ")),
			zap.Int64("duration_ms", dur.Milliseconds()),
			zap.String("stderr", truncate(errb.String(), 8<<10)),
			zap.Error(err),
		)
	} else {
		logger.Debug("exec ok",
			zap.String("cmd", name),
			zap.Int64("duration_ms", dur.Milliseconds()),
			zap.Int("stdout_bytes", out.Len()),
		)
	}

	return out.Bytes(), errb.Bytes(), err
}

// exitCoder is satisfied by *exec.ExitError
type exitCoder interface {
	ExitCode() int
}

// writeTemp stores the image where the command line tools can read it
func writeTemp(img domain.Image) (string, func(), error) {
	if len(img.Data) == 0 {
		return "", nil, fmt.Errorf("%w: empty image", domain.ErrRecognitionFailed)
	}
	f, err := os.CreateTemp("", "capture-*"+imageSuffix(img.MimeType))
	if err != nil {
		return "", nil, fmt.Errorf("create temp image: %w", err)
	}
	cleanup := func() { _ = os.Remove(f.Name()) }
	if _, err := f.Write(img.Data); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("write temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temp image: %w", err)
	}
	return f.Name(), cleanup, nil
}

func imageSuffix(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/tiff":
		return ".tif"
	case "image/bmp":
		return ".bmp"
	default:
		return ".png"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
