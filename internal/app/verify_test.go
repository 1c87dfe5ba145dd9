package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Steward/internal/domain"
)

const verifiedRole = domain.RoleID("role-verified")

func TestVerifyGrantsRoleAndStoresRecord(t *testing.T) {
	roles := newFakeRoles()
	v := NewVerifier(roles, verifiedRole)

	rec, err := v.Verify(context.Background(), "user-1", "Shadow (Андрей)")
	require.NoError(t, err)
	assert.Equal(t, "Shadow", rec.Identity.Nickname)
	assert.Equal(t, "Андрей", rec.Identity.Given)
	assert.Equal(t, "Shadow (Андрей)", rec.Identity.ServerNickname())

	assert.True(t, roles.has("user-1", verifiedRole))
	assert.Equal(t, 1, v.Count())
}

func TestVerifyRejectsBadFormat(t *testing.T) {
	v := NewVerifier(newFakeRoles(), verifiedRole)

	_, err := v.Verify(context.Background(), "user-1", "просто ник")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, v.Count())
}

func TestVerifyRejectsSecondAttempt(t *testing.T) {
	v := NewVerifier(newFakeRoles(), verifiedRole)

	_, err := v.Verify(context.Background(), "user-1", "Shadow (Андрей)")
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), "user-1", "Ghost (Пётр)")
	assert.ErrorIs(t, err, domain.ErrAlreadyVerified)
}

func TestVerifyHierarchyFailureLeavesNoRecord(t *testing.T) {
	roles := newFakeRoles()
	roles.positions[verifiedRole] = 200
	v := NewVerifier(roles, verifiedRole)

	_, err := v.Verify(context.Background(), "user-1", "Shadow (Андрей)")
	assert.ErrorIs(t, err, domain.ErrPermission)
	assert.Equal(t, 0, v.Count())
	assert.False(t, roles.has("user-1", verifiedRole))
}

func TestRenameUpdatesExistingRecord(t *testing.T) {
	v := NewVerifier(newFakeRoles(), verifiedRole)

	_, err := v.Verify(context.Background(), "user-1", "Shadow (Андрей)")
	require.NoError(t, err)

	rec, err := v.Rename(context.Background(), "user-1", "Ghost (Андрей)")
	require.NoError(t, err)
	assert.Equal(t, "Ghost", rec.Identity.Nickname)

	stored, ok := v.Lookup("user-1")
	require.True(t, ok)
	assert.Equal(t, "Ghost (Андрей)", stored.Identity.ServerNickname())
}

func TestRenameRequiresVerification(t *testing.T) {
	v := NewVerifier(newFakeRoles(), verifiedRole)

	_, err := v.Rename(context.Background(), "user-1", "Ghost (Андрей)")
	assert.ErrorIs(t, err, domain.ErrNotVerified)
}
