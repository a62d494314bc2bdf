//go:build linux

// Package frontend drives the capture workflow behind cbpfctl: resolve a
// filter preset, attach it to a raw socket, and report what gets through.
package frontend

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tcassar-diss/classicbpf/bpf"
	"github.com/tcassar-diss/classicbpf/preset"
	"github.com/tcassar-diss/classicbpf/socket"
)

var ErrUnknownPreset = errors.New("unknown preset")

// CaptureCfg configures one capture run.
type CaptureCfg struct {
	Iface      string
	PresetName string
	PresetPath string // optional TOML preset file; built-ins are used when empty
	Count      int    // stop after this many frames; 0 runs until interrupted
	Verbose    bool
}

// Run attaches the configured filter to a raw socket on cfg.Iface and
// reads frames until the count is reached or the process is interrupted.
// The filter is detached before the socket is closed.
func Run(cfg *CaptureCfg) error {
	logger, err := initLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to get a logger: %w", err)
	}
	defer logger.Sync()

	program, err := resolveProgram(cfg)
	if err != nil {
		return fmt.Errorf("failed to resolve preset: %w", err)
	}

	conn, err := socket.Open(cfg.Iface)
	if err != nil {
		return fmt.Errorf("failed to open capture socket: %w", err)
	}
	defer conn.Close()

	if err := program.Attach(conn.Fd()); err != nil {
		return fmt.Errorf("failed to attach filter: %w", err)
	}

	logger.Infow("filter attached",
		"iface", cfg.Iface,
		"preset", cfg.PresetName,
		"instructions", program.Len(),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var captured atomic.Int64

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()

		return capture(ctx, logger, conn, cfg.Count, &captured)
	})

	g.Go(func() error {
		progress(ctx, logger, &captured)

		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("capture failed: %w", err)
	}

	if err := bpf.Detach(conn.Fd()); err != nil {
		return fmt.Errorf("failed to detach filter: %w", err)
	}

	logger.Infow("capture finished", "frames", captured.Load())

	return nil
}

func initLogger(verbose bool) (*zap.SugaredLogger, error) {
	newLogger := zap.NewProduction
	if verbose {
		newLogger = zap.NewDevelopment
	}

	l, err := newLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get zap logger: %w", err)
	}

	return l.Sugar(), nil
}

// resolveProgram picks the filter program: from the preset file when one
// was given, from the built-ins otherwise.
func resolveProgram(cfg *CaptureCfg) (*bpf.Program, error) {
	if cfg.PresetPath == "" {
		p, ok := preset.Builtin(cfg.PresetName)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a built-in", ErrUnknownPreset, cfg.PresetName)
		}

		return p, nil
	}

	presets, err := preset.LoadFile(cfg.PresetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load preset file: %w", err)
	}

	p, ok := presets[cfg.PresetName]
	if !ok {
		return nil, fmt.Errorf("%w: %q not in %s", ErrUnknownPreset, cfg.PresetName, cfg.PresetPath)
	}

	return p, nil
}

func capture(
	ctx context.Context,
	logger *zap.SugaredLogger,
	conn *socket.Conn,
	count int,
	captured *atomic.Int64,
) error {
	buf := make([]byte, 65536)

	for count == 0 || captured.Load() < int64(count) {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// short poll so interrupts are noticed without closing the
		// socket out from under a blocked read
		ready, err := conn.Poll(500 * time.Millisecond)
		if err != nil {
			return fmt.Errorf("failed to wait for frames: %w", err)
		}

		if !ready {
			continue
		}

		n, err := conn.Read(buf)
		if err != nil {
			return fmt.Errorf("failed to read frame: %w", err)
		}

		captured.Add(1)
		logger.Debugw("frame passed filter", "len", n, "total", captured.Load())
	}

	return nil
}

func progress(ctx context.Context, logger *zap.SugaredLogger, captured *atomic.Int64) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			logger.Infow("capturing", "frames", captured.Load())
		}
	}
}
