// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mailer_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/byteandblog/internal/platform/mailer"
)

func TestLogSender_NeverLogsBody(t *testing.T) {
	var buffer bytes.Buffer
	sender := mailer.NewLogSender(slog.New(slog.NewJSONHandler(&buffer, nil)))

	err := sender.Send(context.Background(), mailer.Message{
		To:      "alice@example.com",
		Subject: "Password Reset OTP",
		Body:    "Your OTP for password reset is: 123456",
	})
	require.NoError(t, err)

	assert.Contains(t, buffer.String(), "alice@example.com")
	assert.NotContains(t, buffer.String(), "123456")
}

func TestRecorder(t *testing.T) {
	recorder := &mailer.Recorder{}

	_, ok := recorder.Last()
	assert.False(t, ok)

	require.NoError(t, recorder.Send(context.Background(), mailer.Message{To: "a@example.com"}))
	require.NoError(t, recorder.Send(context.Background(), mailer.Message{To: "b@example.com"}))

	last, ok := recorder.Last()
	assert.True(t, ok)
	assert.Equal(t, "b@example.com", last.To)
	assert.Len(t, recorder.Sent(), 2)

	recorder.Err = errors.New("relay down")
	assert.Error(t, recorder.Send(context.Background(), mailer.Message{To: "c@example.com"}))
	assert.Len(t, recorder.Sent(), 2)
}

func TestNewSMTPSender(t *testing.T) {
	sender, err := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "user",
		Password: "pass",
		From:     "no-reply@byteandblog.app",
	})
	require.NoError(t, err)
	assert.NotNil(t, sender)
}
