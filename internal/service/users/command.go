package users

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/oshokin/mission-console/internal/dialog"
	"github.com/oshokin/mission-console/internal/logger"
	"github.com/oshokin/mission-console/internal/service/common"
)

var (
	// ErrNoUser is returned when no account name is given or configured.
	ErrNoUser = errors.New("no user name given")
	// ErrNotTerminal is returned when a password prompt has no terminal.
	ErrNotTerminal = errors.New("stdin is not a terminal")
)

// PasswordReader reads one password after showing prompt.
type PasswordReader func(prompt string) (string, error)

// PasswdOptions configures the password change command.
type PasswdOptions struct {
	common.Target

	// Username is the account to change; defaults to the configured user.
	Username string
	// ReadPassword reads a password; defaults to a no-echo terminal prompt.
	ReadPassword PasswordReader
	// Out receives the confirmation.
	Out io.Writer
}

// Passwd changes the password of an account.
func Passwd(ctx context.Context, opts *PasswdOptions) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "users-passwd")

	c, cfg, err := common.Connect(ctx, &opts.Target)
	if err != nil {
		return err
	}

	defer func() {
		_ = c.Close()
	}()

	name := opts.Username
	if name == "" {
		name = cfg.Username
	}

	if name == "" {
		return ErrNoUser
	}

	user, err := c.GetUser(ctx, name)
	if err != nil {
		return err
	}

	readPassword := opts.ReadPassword
	if readPassword == nil {
		readPassword = TerminalPassword
	}

	d := dialog.NewChangePasswordDialog(c, *user)

	if d.Password, err = readPassword(fmt.Sprintf("New password for %s: ", user.Name)); err != nil {
		return err
	}

	if d.PasswordConfirmation, err = readPassword("Confirm password: "); err != nil {
		return err
	}

	if err := d.Submit(ctx); err != nil {
		return err
	}

	actor, err := common.DetectActor()
	if err != nil {
		logger.DebugKV(ctx, "Actor detection failed", "error", err)
	}

	logger.InfoKV(ctx, "Password changed", "user", user.Name, "actor", actor.String())

	_, err = fmt.Fprintf(opts.Out, "Password of %s changed.\n", user.Name)

	return err
}

// TerminalPassword prompts on stderr and reads a line from stdin without echo.
func TerminalPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec // File descriptors fit in int.

	if !term.IsTerminal(fd) {
		return "", ErrNotTerminal
	}

	if _, err := fmt.Fprint(os.Stderr, prompt); err != nil {
		return "", err
	}

	password, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	return string(password), nil
}
