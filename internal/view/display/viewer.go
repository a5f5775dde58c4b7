package display

import (
	"context"
	"errors"
	"path"
	"strings"
)

// ErrNoViewer is returned for objects no viewer can open.
var ErrNoViewer = errors.New("no viewer for object")

// URLResolver derives the download URL of a stored object.
type URLResolver interface {
	ObjectURL(bucket, name string) string
}

// Viewer opens one display object.
type Viewer interface {
	// Init prepares the viewer for the object.
	Init(ctx context.Context, objectName string) error
	// HasPendingChanges reports whether closing the viewer would lose edits.
	HasPendingChanges() bool
}

// ImageViewer shows an image by URL. It is read-only.
type ImageViewer struct {
	// storage resolves object URLs.
	storage URLResolver
	// bucket is the display bucket.
	bucket string
	// url is the URL of the shown image, set by Init.
	url string
}

// NewImageViewer returns a viewer of images stored in bucket.
func NewImageViewer(storage URLResolver, bucket string) *ImageViewer {
	return &ImageViewer{
		storage: storage,
		bucket:  bucket,
	}
}

// Init resolves the URL of the image.
func (v *ImageViewer) Init(_ context.Context, objectName string) error {
	v.url = v.storage.ObjectURL(v.bucket, objectName)

	return nil
}

// URL returns the URL of the shown image, empty before Init.
func (v *ImageViewer) URL() string {
	return v.url
}

// HasPendingChanges is always false.
func (v *ImageViewer) HasPendingChanges() bool {
	return false
}

// imageExtensions are the object extensions opened by ImageViewer.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
	".bmp":  true,
}

// IsImage reports whether objectName has an image extension.
func IsImage(objectName string) bool {
	return imageExtensions[strings.ToLower(path.Ext(objectName))]
}

// Open returns an initialized viewer for objectName.
func Open(ctx context.Context, storage URLResolver, bucket, objectName string) (Viewer, error) {
	if !IsImage(objectName) {
		return nil, ErrNoViewer
	}

	v := NewImageViewer(storage, bucket)
	if err := v.Init(ctx, objectName); err != nil {
		return nil, err
	}

	return v, nil
}
