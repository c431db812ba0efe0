package config

import "errors"

// ErrEmptySecretKey возвращается, если секрет подписи токенов не задан.
var ErrEmptySecretKey = errors.New("jwt secret key must not be empty")

// JWTConfig содержит настройки подписи токенов и хэширования паролей.
type JWTConfig struct {
	SecretKey  string `yaml:"secret_key" env:"BLOGLIST_JWT_SECRET_KEY" env-required:"true"`
	BCryptCost int    `yaml:"bcrypt_cost" env:"BLOGLIST_BCRYPT_COST" env-default:"10"`
}

// Validate проверяет, что секрет задан.
func (j *JWTConfig) Validate() error {
	if j.SecretKey == "" {
		return ErrEmptySecretKey
	}
	return nil
}
