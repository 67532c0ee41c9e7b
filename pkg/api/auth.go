package api

// GoogleAuthRequest представляет запрос на обмен Google ID token на backend токен
type GoogleAuthRequest struct {
	IDToken string `json:"id_token" validate:"required"` // подписанный Google credential (JWT)
}

// TokenResponse представляет ответ с backend токеном доступа
type TokenResponse struct {
	AccessToken string `json:"access_token"` // JWT access token
	TokenType   string `json:"token_type"`   // всегда "Bearer"
	ExpiresIn   int64  `json:"expires_in"`   // время жизни access token в секундах
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // машинно-читаемый код ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
