package dialog

import (
	"context"
	"fmt"
	"strings"

	"github.com/oshokin/mission-console/internal/logger"
)

// FieldName is the base name field of the rename form.
const FieldName = "name"

// ObjectStore reads and writes objects of a bucket.
type ObjectStore interface {
	GetObject(ctx context.Context, bucket, name string) ([]byte, error)
	UploadObject(ctx context.Context, bucket, name string, data []byte) error
	DeleteObject(ctx context.Context, bucket, name string) error
}

// RenameResult is the outcome of a successful rename.
type RenameResult struct {
	// Name is the object name after the rename.
	Name string
	// Renamed is false when the name did not change.
	Renamed bool
	// CleanupErr is set when the old object could not be deleted. The new
	// object exists and holds the data regardless.
	CleanupErr error
}

// RenameDialog renames an object by copying it under the new name and
// deleting the original.
type RenameDialog struct {
	// Name is the new base name, without directory or extension.
	Name string

	// store holds the object.
	store ObjectStore
	// bucket holds the object.
	bucket string
	// original is the full object name being renamed.
	original string
	// closed is set once the rename completed or the dialog was cancelled.
	closed bool
}

// NewRenameDialog opens the dialog for object name in bucket. The base name
// field starts with the current file name without extension.
func NewRenameDialog(store ObjectStore, bucket, name string) *RenameDialog {
	return &RenameDialog{
		Name:     BaseName(name),
		store:    store,
		bucket:   bucket,
		original: name,
	}
}

// Original returns the object name being renamed.
func (d *RenameDialog) Original() string {
	return d.original
}

// Validate checks the base name field.
func (d *RenameDialog) Validate() error {
	name := strings.TrimSpace(d.Name)

	switch {
	case name == "":
		return invalid(FieldName, ErrRequired)
	case strings.Contains(name, "/"):
		return invalid(FieldName, ErrInvalidName)
	default:
		return nil
	}
}

// Target returns the object name the rename would produce.
func (d *RenameDialog) Target() (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}

	return RenamedObject(d.original, strings.TrimSpace(d.Name)), nil
}

// Submit performs the rename and closes the dialog. The original is deleted
// only after the copy was uploaded, and a failed delete is logged and
// reported on the result without failing the rename. An unchanged name
// closes the dialog without touching the store.
func (d *RenameDialog) Submit(ctx context.Context) (RenameResult, error) {
	if d.closed {
		return RenameResult{}, ErrClosed
	}

	target, err := d.Target()
	if err != nil {
		return RenameResult{}, err
	}

	if target == d.original {
		d.closed = true

		return RenameResult{Name: target}, nil
	}

	ctx = logger.WithKV(logger.WithKV(ctx, "bucket", d.bucket), "object", d.original)

	data, err := d.store.GetObject(ctx, d.bucket, d.original)
	if err != nil {
		return RenameResult{}, fmt.Errorf("read %s: %w", d.original, err)
	}

	if err := d.store.UploadObject(ctx, d.bucket, target, data); err != nil {
		return RenameResult{}, fmt.Errorf("write %s: %w", target, err)
	}

	result := RenameResult{
		Name:    target,
		Renamed: true,
	}

	if err := d.store.DeleteObject(ctx, d.bucket, d.original); err != nil {
		logger.WarnKV(ctx, "Renamed object kept its original", "target", target, "error", err)

		result.CleanupErr = fmt.Errorf("delete %s: %w", d.original, err)
	}

	d.closed = true

	return result, nil
}

// Cancel closes the dialog without changes.
func (d *RenameDialog) Cancel() {
	d.closed = true
}

// Closed reports whether the dialog was closed.
func (d *RenameDialog) Closed() bool {
	return d.closed
}

// RenamedObject returns the directory prefix of original, then base, then the
// lower-cased extension of original.
func RenamedObject(original, base string) string {
	prefix := ""
	if idx := strings.LastIndexByte(original, '/'); idx >= 0 {
		prefix = original[:idx+1]
	}

	if ext := Extension(original); ext != "" {
		return prefix + base + "." + strings.ToLower(ext)
	}

	return prefix + base
}

// BaseName returns the file name of an object without directory and extension.
func BaseName(name string) string {
	file := fileName(name)
	if idx := strings.LastIndexByte(file, '.'); idx > 0 {
		return file[:idx]
	}

	return file
}

// Extension returns the extension of the file name of an object, without dot.
func Extension(name string) string {
	file := fileName(name)
	if idx := strings.LastIndexByte(file, '.'); idx > 0 {
		return file[idx+1:]
	}

	return ""
}

func fileName(name string) string {
	return name[strings.LastIndexByte(name, '/')+1:]
}
