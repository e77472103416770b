package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"github.com/halftime-club/paddock-predict/models"
)

func GetPlayerIDFromContext(ctx context.Context) (int, error) {
	claims, ok := ctx.Value(playerContextKey).(jwt.MapClaims)
	if !ok {
		return 0, errors.New("player claims not found in context or invalid type")
	}

	idClaim, ok := claims[jwtClaimPlayerID]
	if !ok {
		return 0, fmt.Errorf("missing '%s' claim in token", jwtClaimPlayerID)
	}

	// JSON-числа приходят как float64.
	idFloat, ok := idClaim.(float64)
	if !ok {
		return 0, fmt.Errorf("invalid type for '%s' claim: expected float64, got %T", jwtClaimPlayerID, idClaim)
	}
	if idFloat != float64(int(idFloat)) {
		return 0, fmt.Errorf("'%s' claim is not an integer: %f", jwtClaimPlayerID, idFloat)
	}

	playerID := int(idFloat)
	if playerID <= 0 {
		return 0, fmt.Errorf("invalid player ID value in '%s' claim: %d", jwtClaimPlayerID, playerID)
	}
	return playerID, nil
}

func GetPlayerRoleFromContext(ctx context.Context) (models.PlayerRole, error) {
	claims, ok := ctx.Value(playerContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("player claims not found in context or invalid type")
	}

	roleClaim, ok := claims[jwtClaimRole]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimRole)
	}
	roleStr, ok := roleClaim.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for '%s' claim: expected string, got %T", jwtClaimRole, roleClaim)
	}

	role := models.PlayerRole(roleStr)
	switch role {
	case models.RoleAdmin, models.RolePlayer:
		return role, nil
	default:
		return "", fmt.Errorf("invalid role value in claim: %q", roleStr)
	}
}
