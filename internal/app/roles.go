package app

import (
	"context"
	"fmt"

	"github.com/dkeye/Steward/internal/core"
	"github.com/dkeye/Steward/internal/domain"
)

// checkHierarchy enforces the precondition for every role mutation: the
// bot's top role must sit strictly above the target role.
func checkHierarchy(ctx context.Context, roles core.RoleAPI, role domain.RoleID) error {
	target, err := roles.RolePosition(ctx, role)
	if err != nil {
		return err
	}
	top, err := roles.BotTopRolePosition(ctx)
	if err != nil {
		return err
	}
	if target >= top {
		return fmt.Errorf("%w: role %s is at or above the bot's top role", domain.ErrPermission, role)
	}
	return nil
}

func grantRoleChecked(ctx context.Context, roles core.RoleAPI, member domain.MemberID, role domain.RoleID) error {
	if err := checkHierarchy(ctx, roles, role); err != nil {
		return err
	}
	return roles.GrantRole(ctx, member, role)
}

func revokeRoleChecked(ctx context.Context, roles core.RoleAPI, member domain.MemberID, role domain.RoleID) error {
	if err := checkHierarchy(ctx, roles, role); err != nil {
		return err
	}
	return roles.RevokeRole(ctx, member, role)
}
