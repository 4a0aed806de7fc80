package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleModerator, ParseRole("moderator"))
	assert.Equal(t, RoleUser, ParseRole("user"))
	// unknown strings degrade to the weakest role
	assert.Equal(t, RoleUser, ParseRole("superadmin"))
	assert.Equal(t, RoleUser, ParseRole(""))
}

func TestCanWriteCatalog(t *testing.T) {
	assert.True(t, CanWriteCatalog(RoleAdmin))
	assert.False(t, CanWriteCatalog(RoleModerator))
	assert.False(t, CanWriteCatalog(RoleUser))
}

func TestCanModifyAuthored(t *testing.T) {
	const author = "author-id"

	t.Run("Author", func(t *testing.T) {
		assert.True(t, CanModifyAuthored(RoleUser, author, author))
	})

	t.Run("OtherUser", func(t *testing.T) {
		assert.False(t, CanModifyAuthored(RoleUser, "someone-else", author))
	})

	t.Run("Moderator", func(t *testing.T) {
		assert.True(t, CanModifyAuthored(RoleModerator, "someone-else", author))
	})

	t.Run("Admin", func(t *testing.T) {
		assert.True(t, CanModifyAuthored(RoleAdmin, "someone-else", author))
	})

	t.Run("AnonymousNeverMatches", func(t *testing.T) {
		assert.False(t, CanModifyAuthored(RoleUser, "", ""))
	})
}

func TestCanManageUsers(t *testing.T) {
	assert.True(t, CanManageUsers(RoleAdmin))
	assert.False(t, CanManageUsers(RoleModerator))
	assert.False(t, CanManageUsers(RoleUser))
}

func TestCanChangeRole(t *testing.T) {
	assert.True(t, CanChangeRole(RoleAdmin))
	assert.False(t, CanChangeRole(RoleModerator))
	assert.False(t, CanChangeRole(RoleUser))
}
