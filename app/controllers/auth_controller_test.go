package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextPath(t *testing.T) {
	assert.Equal(t, "/new/", nextPath("/new/"))
	assert.Equal(t, "/sarah/", nextPath("/sarah/"))

	// Anything that could leave the site falls back to the home feed
	assert.Equal(t, "/", nextPath(""))
	assert.Equal(t, "/", nextPath("https://example.com/"))
	assert.Equal(t, "/", nextPath("//example.com/"))
}
