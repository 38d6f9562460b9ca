// Package crontab reads and installs the crontab of the current user through
// the host scheduler's command line interface.
package crontab

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aatumaykin/crondir/internal/constants"
	"github.com/aatumaykin/crondir/internal/logger"
)

var (
	// ErrRead is returned by a strict Read when the scheduler fails
	ErrRead = errors.New("failed to read crontab")

	// ErrWrite is returned when the scheduler rejects the new crontab
	ErrWrite = errors.New("failed to load crontab")
)

// Accessor reads and installs the crontab. A successful read is cached for
// the lifetime of the Accessor unless a refresh is requested.
type Accessor struct {
	binary string
	runner Runner
	logger *logger.Logger

	cached *string
}

// New creates an Accessor for the scheduler binary. Empty binary means
// "crontab", nil runner means ExecRunner.
func New(binary string, runner Runner, log *logger.Logger) *Accessor {
	if binary == "" {
		binary = constants.DefaultScheduler
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Accessor{
		binary: binary,
		runner: runner,
		logger: log.With(logger.Field{Key: "scheduler", Value: binary}),
	}
}

// Read returns the installed crontab.
//
// When the scheduler fails (for example because no crontab is installed),
// a strict read returns ErrRead with the scheduler's diagnostic, otherwise
// the crontab is treated as empty.
func (a *Accessor) Read(ctx context.Context, refresh, strict bool) (string, error) {
	if a.cached != nil && !refresh {
		return *a.cached, nil
	}

	stdout, stderr, err := a.runner.Run(ctx, a.binary, constants.SchedulerListFlag)
	if err != nil {
		if strict {
			return "", fmt.Errorf("%w: %s", ErrRead, diagnostic(stderr))
		}
		a.logger.Debug("no crontab installed, treating as empty",
			logger.Field{Key: "stderr", Value: strings.TrimSpace(string(stderr))})
		a.SetCached("")
		return "", nil
	}

	a.SetCached(string(stdout))
	return *a.cached, nil
}

// Install replaces the crontab with text. The text is staged in a temporary
// file which is handed to the scheduler.
func (a *Accessor) Install(ctx context.Context, text string) error {
	tmp, err := os.CreateTemp("", "crondir-crontab-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary crontab: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temporary crontab: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temporary crontab: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary crontab: %w", err)
	}

	_, stderr, err := a.runner.Run(ctx, a.binary, tmp.Name())
	if err != nil {
		a.logger.Error("scheduler rejected crontab", err,
			logger.Field{Key: "stderr", Value: strings.TrimSpace(string(stderr))})
		return fmt.Errorf("%w: %s", ErrWrite, diagnostic(stderr))
	}

	a.SetCached(text)
	a.logger.Debug("crontab installed", logger.Field{Key: "bytes", Value: len(text)})
	return nil
}

// SetCached replaces the cached crontab text.
func (a *Accessor) SetCached(text string) {
	a.cached = &text
}

func diagnostic(stderr []byte) string {
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		return "Unknown error"
	}
	return msg
}
