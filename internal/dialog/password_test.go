package dialog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/oshokin/mission-console/internal/domain/system"
)

var errTestBackend = errors.New("test backend error")

// fakeEditor records EditUser calls.
type fakeEditor struct {
	names   []string
	patches []system.UserPatch
	err     error
}

func (f *fakeEditor) EditUser(_ context.Context, name string, patch system.UserPatch) error {
	f.names = append(f.names, name)
	f.patches = append(f.patches, patch)

	return f.err
}

// TestChangePasswordDialog_Validate covers required fields and mismatch.
func TestChangePasswordDialog_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		password     string
		confirmation string
		want         []error
	}{
		{name: "both empty", want: []error{ErrRequired, ErrRequired}},
		{name: "confirmation empty", password: "a", want: []error{ErrRequired}},
		{name: "mismatch", password: "a", confirmation: "b", want: []error{ErrPasswordMismatch}},
		{name: "valid", password: "a", confirmation: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := NewChangePasswordDialog(&fakeEditor{}, system.UserInfo{Name: "operator"})
			d.Password = tt.password
			d.PasswordConfirmation = tt.confirmation

			err := d.Validate()
			if tt.want == nil {
				require.NoError(t, err)

				return
			}

			errs := multierr.Errors(err)
			require.Len(t, errs, len(tt.want))

			for i, want := range tt.want {
				var validation *ValidationError
				require.ErrorAs(t, errs[i], &validation)
				require.ErrorIs(t, validation, want)
			}
		})
	}
}

// TestChangePasswordDialog_Submit ensures exactly one edit is sent and the dialog closes.
func TestChangePasswordDialog_Submit(t *testing.T) {
	t.Parallel()

	editor := &fakeEditor{}
	d := NewChangePasswordDialog(editor, system.UserInfo{Name: "operator"})
	d.Password = "new"
	d.PasswordConfirmation = "other"

	err := d.Submit(context.Background())
	require.ErrorIs(t, err, ErrPasswordMismatch)
	require.False(t, d.Closed())
	require.Empty(t, editor.names)

	d.PasswordConfirmation = "new"
	require.NoError(t, d.Submit(context.Background()))
	require.True(t, d.Closed())
	require.Equal(t, []string{"operator"}, editor.names)
	require.NotNil(t, editor.patches[0].Password)
	require.Equal(t, "new", *editor.patches[0].Password)
	require.Nil(t, editor.patches[0].Email)

	require.ErrorIs(t, d.Submit(context.Background()), ErrClosed)
	require.Len(t, editor.names, 1)
}

// TestChangePasswordDialog_BackendError keeps the dialog open on failure.
func TestChangePasswordDialog_BackendError(t *testing.T) {
	t.Parallel()

	d := NewChangePasswordDialog(&fakeEditor{err: errTestBackend}, system.UserInfo{Name: "operator"})
	d.Password = "x"
	d.PasswordConfirmation = "x"

	err := d.Submit(context.Background())
	require.ErrorIs(t, err, errTestBackend)
	require.False(t, d.Closed())

	var validation *ValidationError
	require.False(t, errors.As(err, &validation))

	d.Cancel()
	require.True(t, d.Closed())
}
