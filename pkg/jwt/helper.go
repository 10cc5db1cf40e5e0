package jwt

// GetPayload extracts the payload map from token claims.
func GetPayload(claims map[string]any) map[string]any {
	if payload, ok := claims["payload"].(map[string]any); ok {
		return payload
	}
	return map[string]any{}
}

// GetPayloadString safely extracts a string value from the claims payload.
func GetPayloadString(claims map[string]any, key string) string {
	payload := GetPayload(claims)
	if val, ok := payload[key].(string); ok {
		return val
	}
	return ""
}

// GetSubjectFromToken extracts subject (sub) from token claims.
func GetSubjectFromToken(claims map[string]any) string {
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}

// GetTokenIDFromToken extracts JWT ID (jti) from token claims.
func GetTokenIDFromToken(claims map[string]any) string {
	if jti, ok := claims["jti"].(string); ok {
		return jti
	}
	return ""
}

// IsAccessToken reports whether the claims belong to an access token.
func IsAccessToken(claims map[string]any) bool {
	return GetSubjectFromToken(claims) == "access"
}

// IsRefreshToken reports whether the claims belong to a refresh token.
func IsRefreshToken(claims map[string]any) bool {
	return GetSubjectFromToken(claims) == "refresh"
}
