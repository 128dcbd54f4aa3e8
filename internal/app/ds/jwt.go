package ds

import (
	"github.com/Synapsr/Louez-sub011/internal/app/role"

	"github.com/golang-jwt/jwt"
)

type JWTClaims struct {
	jwt.StandardClaims
	UserID  uint      `json:"user_id"`
	StoreID uint      `json:"store_id"`
	Role    role.Role `json:"role"`
}
