package client

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"path"
)

// objectPath returns the REST path of an object.
func objectPath(bucket, name string) string {
	return fmt.Sprintf("/storage/buckets/%s/objects/%s", url.PathEscape(bucket), escapePath(name))
}

// GetObject downloads an object.
func (c *Client) GetObject(ctx context.Context, bucket, name string) ([]byte, error) {
	req, cancel := c.request(ctx)
	defer cancel()

	resp, err := req.
		SetHeader("Accept", "*/*").
		Get(objectPath(bucket, name))
	if err := checkResponse(fmt.Sprintf("get object %s/%s", bucket, name), resp, err); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

// UploadObject stores data under name, replacing any existing object.
func (c *Client) UploadObject(ctx context.Context, bucket, name string, data []byte) error {
	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	req, cancel := c.request(ctx)
	defer cancel()

	resp, err := req.
		SetHeader("Content-Type", contentType).
		SetBody(data).
		Post(objectPath(bucket, name))

	return checkResponse(fmt.Sprintf("upload object %s/%s", bucket, name), resp, err)
}

// DeleteObject removes an object.
func (c *Client) DeleteObject(ctx context.Context, bucket, name string) error {
	req, cancel := c.request(ctx)
	defer cancel()

	resp, err := req.Delete(objectPath(bucket, name))

	return checkResponse(fmt.Sprintf("delete object %s/%s", bucket, name), resp, err)
}

// ObjectURL returns the direct download URL of an object.
func (c *Client) ObjectURL(bucket, name string) string {
	return c.baseURL + apiPrefix + objectPath(bucket, name)
}
