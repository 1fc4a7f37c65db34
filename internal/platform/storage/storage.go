// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage persists uploaded files (portfolio images) and returns the
public URL they can be fetched from.

Backends:

  - Local: files under UPLOAD_DIR, served by the API itself at /uploads/.
  - S3: any S3-compatible bucket (AWS, R2, MinIO) via aws-sdk-go-v2.

Object keys are "<uuidv7>-<slugged-name>.<ext>", so names never collide and
listings sort by upload time.
*/
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/taibuivan/byteandblog/pkg/slug"
	"github.com/taibuivan/byteandblog/pkg/uuid"
)

// ErrEmptyFile is returned when an upload carries no bytes.
var ErrEmptyFile = errors.New("storage: empty file")

// Uploader stores a file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, originalName, contentType string, body io.Reader) (string, error)
}

// ObjectKey derives a unique, filesystem-safe key from the client file name.
func ObjectKey(originalName string) string {
	return uuid.New() + "-" + slug.FileName(originalName)
}

// # Local Disk

// LocalUploader writes files into a directory that the HTTP server exposes
// under URLPrefix.
type LocalUploader struct {
	dir       string
	urlPrefix string
}

// NewLocalUploader creates dir if needed.
func NewLocalUploader(dir, urlPrefix string) (*LocalUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: failed to create upload dir: %w", err)
	}

	return &LocalUploader{
		dir:       dir,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
	}, nil
}

// Upload implements [Uploader].
func (uploader *LocalUploader) Upload(ctx context.Context, originalName, _ string, body io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := ObjectKey(originalName)
	path := filepath.Join(uploader.dir, key)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: failed to create %s: %w", key, err)
	}

	written, err := io.Copy(file, body)
	closeErr := file.Close()

	if err == nil && written == 0 {
		err = ErrEmptyFile
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("storage: failed to write %s: %w", key, err)
	}

	return uploader.urlPrefix + "/" + key, nil
}
