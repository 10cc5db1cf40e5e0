// Package jwt handles signing and validation of bearer tokens.
package jwt

import (
	"time"

	jwtstd "github.com/golang-jwt/jwt/v5"
)

// TokenError represents JWT token related errors
type TokenError string

func (e TokenError) Error() string {
	return string(e)
}

const (
	DefaultAccessTokenExpire  = time.Hour * 24
	DefaultRefreshTokenExpire = time.Hour * 24 * 7

	ErrNeedTokenProvider = TokenError("cannot sign token without token provider")
	ErrInvalidToken      = TokenError("invalid token")
	ErrTokenParsing      = TokenError("token parsing error")
)

// Token represents the token body
type Token struct {
	JTI     string         `json:"jti"`
	Payload map[string]any `json:"payload"`
	Subject string         `json:"sub"`
	Expire  time.Duration  `json:"exp"`
}

// TokenManager handles JWT token operations
type TokenManager struct {
	key          string
	accessExpire time.Duration
}

// NewTokenManager creates a new TokenManager instance
func NewTokenManager(key string, accessExpire ...time.Duration) *TokenManager {
	expire := DefaultAccessTokenExpire
	if len(accessExpire) > 0 && accessExpire[0] > 0 {
		expire = accessExpire[0]
	}
	return &TokenManager{key: key, accessExpire: expire}
}

// validateKey validates the token key
func (jtm *TokenManager) validateKey() error {
	if jtm.key == "" {
		return ErrNeedTokenProvider
	}
	return nil
}

// generateToken generates a JWT token
func (jtm *TokenManager) generateToken(token *Token) (string, error) {
	if err := jtm.validateKey(); err != nil {
		return "", err
	}

	claims := jwtstd.MapClaims{
		"jti":     token.JTI,
		"sub":     token.Subject,
		"payload": token.Payload,
		"exp":     time.Now().Add(token.Expire).Unix(),
	}

	t := jwtstd.NewWithClaims(jwtstd.SigningMethodHS256, claims)
	return t.SignedString([]byte(jtm.key))
}

// GenerateAccessToken generates an access token for the given payload.
func (jtm *TokenManager) GenerateAccessToken(jti string, payload map[string]any) (string, error) {
	return jtm.generateToken(&Token{
		JTI:     jti,
		Payload: payload,
		Subject: "access",
		Expire:  jtm.accessExpire,
	})
}

// GenerateRefreshToken generates a refresh token for the given payload.
func (jtm *TokenManager) GenerateRefreshToken(jti string, payload map[string]any) (string, error) {
	return jtm.generateToken(&Token{
		JTI:     jti,
		Payload: payload,
		Subject: "refresh",
		Expire:  DefaultRefreshTokenExpire,
	})
}

// ValidateToken validates a JWT token
func (jtm *TokenManager) ValidateToken(tokenString string) (*jwtstd.Token, error) {
	if err := jtm.validateKey(); err != nil {
		return nil, err
	}

	return jwtstd.Parse(tokenString, func(token *jwtstd.Token) (any, error) {
		return []byte(jtm.key), nil
	})
}

// DecodeToken decodes a JWT token into its claims
func (jtm *TokenManager) DecodeToken(tokenString string) (map[string]any, error) {
	token, err := jtm.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return token.Claims.(jwtstd.MapClaims), nil
}

// GetTokenExpiryTime extracts the expiration time from a token
func (jtm *TokenManager) GetTokenExpiryTime(tokenString string) (time.Time, error) {
	claims, err := jtm.DecodeToken(tokenString)
	if err != nil {
		return time.Time{}, err
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, ErrTokenParsing
	}

	return time.Unix(int64(exp), 0), nil
}

// IsTokenExpired checks if a token is expired
func (jtm *TokenManager) IsTokenExpired(tokenString string) (bool, error) {
	expiryTime, err := jtm.GetTokenExpiryTime(tokenString)
	if err != nil {
		return true, err
	}
	return expiryTime.Before(time.Now()), nil
}
