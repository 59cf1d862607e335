package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret el secreto de firma no está configurado.
var ErrEmptySecret = errors.New("jwt: secret vacío")

// Identity datos del usuario que viajan en el token.
type Identity struct {
	UserID    string
	CompanyID string // vacío para super_admin y clientes de la tienda
	Role      string // super_admin | admin_cliente | gerente | vendedor | cliente_final
}

// Claims claims estándar más la identidad. El rol es informativo: la autorización
// se hace con el usuario recargado desde el repositorio en cada request.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id,omitempty"`
	Role      string `json:"role"`
}

// Generate firma un token HS256 para id; devuelve también su expiración.
func Generate(secret, issuer string, ttl time.Duration, id Identity) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, ErrEmptySecret
	}
	now := time.Now()
	exp := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID:    id.UserID,
		CompanyID: id.CompanyID,
		Role:      id.Role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: firmar: %w", err)
	}
	return signed, exp, nil
}

// Parse valida firma, expiración y emisor (si issuer no es vacío) y devuelve la identidad.
func Parse(secret, issuer, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, ErrEmptySecret
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid || claims.UserID == "" {
		return Identity{}, fmt.Errorf("jwt: claims inválidos")
	}
	return Identity{UserID: claims.UserID, CompanyID: claims.CompanyID, Role: claims.Role}, nil
}
