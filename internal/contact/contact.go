// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package contact stores messages sent through the public contact form and
mails a notification to the site owner and a confirmation to the sender.
*/
package contact

import (
	"time"

	"github.com/taibuivan/byteandblog/internal/platform/apperr"
)

// Message is a contact form submission.
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

const (
	nameMaxLen    = 255
	messageMaxLen = 5000
)

// # Mail Templates

const (
	notifySubject  = "%s Sent you a Message!! ->"
	notifyBody     = "%s\n%s"
	confirmSubject = "Hi %s!!!"
	confirmBody    = "Thanks for Your Message, we will get back to you soon!!!"
)

var ErrMessageNotFound = apperr.NotFound("Contact message")
