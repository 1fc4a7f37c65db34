// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/byteandblog/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Go -- Routines!! ", "go-routines"},
		{"Café Crème", "cafe-creme"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, slug.From(tt.in), tt.in)
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Project Screenshot.PNG", "my-project-screenshot.png"},
		{"../../etc/passwd", "passwd"},
		{"résumé.pdf", "resume.pdf"},
		{".png", "file.png"},
		{"no-extension", "no-extension"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, slug.FileName(tt.in), tt.in)
	}
}
