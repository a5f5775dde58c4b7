package dialog

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/oshokin/mission-console/internal/domain/system"
)

// Password form fields.
const (
	FieldPassword             = "password"
	FieldPasswordConfirmation = "passwordConfirmation"
)

// UserEditor applies partial updates to accounts.
type UserEditor interface {
	EditUser(ctx context.Context, name string, patch system.UserPatch) error
}

// ChangePasswordDialog sets a new password for one account.
type ChangePasswordDialog struct {
	// Password is the new password.
	Password string
	// PasswordConfirmation must repeat Password.
	PasswordConfirmation string

	// editor performs the update.
	editor UserEditor
	// user is the edited account.
	user system.UserInfo
	// closed is set once the password was changed or the dialog cancelled.
	closed bool
}

// NewChangePasswordDialog opens the dialog for user.
func NewChangePasswordDialog(editor UserEditor, user system.UserInfo) *ChangePasswordDialog {
	return &ChangePasswordDialog{
		editor: editor,
		user:   user,
	}
}

// User returns the edited account.
func (d *ChangePasswordDialog) User() system.UserInfo {
	return d.user
}

// Validate checks the form. Both fields are required and must be equal.
func (d *ChangePasswordDialog) Validate() error {
	var err error

	if d.Password == "" {
		err = multierr.Append(err, invalid(FieldPassword, ErrRequired))
	}

	if d.PasswordConfirmation == "" {
		err = multierr.Append(err, invalid(FieldPasswordConfirmation, ErrRequired))
	}

	if err == nil && d.Password != d.PasswordConfirmation {
		err = invalid("", ErrPasswordMismatch)
	}

	return err
}

// Submit validates the form, changes the password and closes the dialog.
// On a validation or backend error the dialog stays open.
func (d *ChangePasswordDialog) Submit(ctx context.Context) error {
	if d.closed {
		return ErrClosed
	}

	if err := d.Validate(); err != nil {
		return err
	}

	password := d.Password
	if err := d.editor.EditUser(ctx, d.user.Name, system.UserPatch{Password: &password}); err != nil {
		return fmt.Errorf("change password of %s: %w", d.user.Name, err)
	}

	d.closed = true

	return nil
}

// Cancel closes the dialog without changes.
func (d *ChangePasswordDialog) Cancel() {
	d.closed = true
}

// Closed reports whether the dialog was closed.
func (d *ChangePasswordDialog) Closed() bool {
	return d.closed
}
