package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtr(t *testing.T) {
	p := Ptr(7)
	assert.Equal(t, 7, *p)
	*p = 8
	assert.NotSame(t, p, Ptr(7))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "user-1", Coalesce("", "user-1", "conn-1"))
	assert.Equal(t, "conn-1", Coalesce("", "", "conn-1"))
	assert.Equal(t, "", Coalesce())
}
