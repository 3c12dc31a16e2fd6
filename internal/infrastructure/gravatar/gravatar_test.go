package gravatar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURL(t *testing.T) {
	// md5("jane@example.com") precomputed.
	want := "https://www.gravatar.com/avatar/9e26471d35a78862c17e467d87cddedf?s=200&r=pg&d=404"

	assert.Equal(t, want, URL("jane@example.com"))

	// Case and surrounding whitespace never change the hash.
	assert.Equal(t, want, URL("  Jane@Example.COM "))
}
