// Package spawn starts detached child processes for the window manager.
package spawn

import (
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ErrEmptyCommand is returned for a blank command line.
var ErrEmptyCommand = errors.New("empty command")

// Spawner starts a command line without waiting for it.
type Spawner interface {
	Spawn(command string) error
}

// Runner runs command lines through a shell in their own session, so they
// outlive the window manager and never receive its terminal signals.
type Runner struct {
	Shell string
	log   *zerolog.Logger
}

// NewRunner returns a Runner using /bin/sh.
func NewRunner(log *zerolog.Logger) *Runner {
	return &Runner{Shell: "/bin/sh", log: log}
}

// Spawn starts command and reaps it in the background. Only start failures
// are returned; the exit status is logged.
func (r *Runner) Spawn(command string) error {
	command = strings.TrimSpace(command)
	if command == "" {
		return ErrEmptyCommand
	}

	cmd := exec.Command(r.Shell, "-c", command)
	cmd.Stdin = nil
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "failed to spawn %q", command)
	}
	r.log.Debug().Str("command", command).Int("pid", cmd.Process.Pid).Msg("spawned")

	go func() {
		if err := cmd.Wait(); err != nil {
			r.log.Warn().Err(err).Str("command", command).Msg("child exited with error")
		}
	}()
	return nil
}
