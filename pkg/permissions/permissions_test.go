package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize_Wildcard(t *testing.T) {
	granted := []string{"*"}

	assert.True(t, Authorize("key:create", granted))
	assert.True(t, Authorize("key:delete", granted))
	assert.True(t, Authorize("anything-at-all", granted))
}

func TestAuthorize_ExactMatch(t *testing.T) {
	granted := []string{"key:list"}

	assert.True(t, Authorize("key:list", granted))
	assert.False(t, Authorize("key:create", granted))
	assert.False(t, Authorize("key:lis", granted))
	assert.False(t, Authorize("key:listx", granted))
}

func TestAuthorize_EmptyGrantsNothing(t *testing.T) {
	assert.False(t, Authorize("key:list", nil))
	assert.False(t, Authorize("key:list", []string{}))
	assert.False(t, Authorize("", nil))
}

func TestAuthorize_NoHierarchicalWildcards(t *testing.T) {
	// "key:*" is only a literal grant, never a prefix pattern.
	assert.False(t, Authorize("key:create", []string{"key:*"}))
	assert.True(t, Authorize("key:*", []string{"key:*"}))
}
