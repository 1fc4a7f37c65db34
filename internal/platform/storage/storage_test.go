// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/byteandblog/internal/platform/storage"
)

func TestObjectKey(t *testing.T) {
	first := storage.ObjectKey("My Screenshot.PNG")
	second := storage.ObjectKey("My Screenshot.PNG")

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(first, "-my-screenshot.png"), first)
	assert.NotContains(t, storage.ObjectKey("../../escape.png"), "..")
}

func TestLocalUploader(t *testing.T) {
	dir := t.TempDir()
	uploader, err := storage.NewLocalUploader(dir, "/uploads/")
	require.NoError(t, err)

	url, err := uploader.Upload(context.Background(), "cover.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/"), url)

	content, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(content))
}

func TestLocalUploader_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	uploader, err := storage.NewLocalUploader(dir, "/uploads")
	require.NoError(t, err)

	_, err = uploader.Upload(context.Background(), "empty.png", "image/png", strings.NewReader(""))
	assert.ErrorIs(t, err, storage.ErrEmptyFile)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "partial files are removed")
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (fake *fakePutter) PutObject(_ context.Context, input *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	fake.input = input
	if input.Body != nil {
		raw, _ := io.ReadAll(input.Body)
		fake.body = string(raw)
	}
	if fake.err != nil {
		return nil, fake.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Uploader(t *testing.T) {
	fake := &fakePutter{}
	uploader := storage.NewS3UploaderWithClient(fake, storage.S3Config{
		Bucket:    "portfolio",
		PublicURL: "https://cdn.byteandblog.app/",
	})

	url, err := uploader.Upload(context.Background(), "Logo.svg", "image/svg+xml", strings.NewReader("<svg/>"))
	require.NoError(t, err)

	require.NotNil(t, fake.input)
	assert.Equal(t, "portfolio", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "image/svg+xml", aws.ToString(fake.input.ContentType))
	assert.Equal(t, "<svg/>", fake.body)
	assert.Equal(t, "https://cdn.byteandblog.app/"+aws.ToString(fake.input.Key), url)
}

func TestS3Uploader_DefaultPublicURL(t *testing.T) {
	fake := &fakePutter{}
	uploader := storage.NewS3UploaderWithClient(fake, storage.S3Config{
		Bucket:   "portfolio",
		Endpoint: "http://minio:9000/",
	})

	url, err := uploader.Upload(context.Background(), "a.png", "", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://minio:9000/portfolio/"), url)
	assert.Nil(t, fake.input.ContentType)
}

func TestS3Uploader_Error(t *testing.T) {
	fake := &fakePutter{err: errors.New("access denied")}
	uploader := storage.NewS3UploaderWithClient(fake, storage.S3Config{Bucket: "portfolio"})

	_, err := uploader.Upload(context.Background(), "a.png", "image/png", strings.NewReader("x"))
	assert.ErrorContains(t, err, "access denied")
}
