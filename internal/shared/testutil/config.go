package testutil

import (
	"time"

	"github.com/team-moa/moa-api-server/internal/config"
)

// NewTestConfig creates a test configuration
// This removes the need for environment variables during testing
func NewTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name: "moa-api-test",
			Env:  "test",
			Port: 8080,
		},
		Database: config.DatabaseConfig{
			Host:            "localhost",
			Port:            1521,
			Service:         "test",
			User:            "test",
			Password:        "test",
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 10 * time.Minute,
			IsAutoMigrate:   true,
		},
		JWT: config.JWTConfig{
			Secret:        "test-jwt-secret-key-must-be-at-least-32-characters-long",
			Expiry:        time.Hour,
			RefreshExpiry: 168 * time.Hour,
		},
		OAuth: config.OAuthConfig{
			Google: config.OAuthProviderConfig{
				ClientID:     "test-google-client-id",
				ClientSecret: "test-google-client-secret",
				RedirectURI:  "http://localhost:8080/api/auth/callback/google",
			},
			Kakao: config.OAuthProviderConfig{
				ClientID:     "test-kakao-client-id",
				ClientSecret: "test-kakao-client-secret",
				RedirectURI:  "http://localhost:8080/api/auth/callback/kakao",
			},
			Naver: config.OAuthProviderConfig{
				ClientID:     "test-naver-client-id",
				ClientSecret: "test-naver-client-secret",
				RedirectURI:  "http://localhost:8080/api/auth/callback/naver",
			},
		},
		Toss: config.TossConfig{
			SecretKey:  "test_sk_dummy",
			ConfirmURL: "https://api.tosspayments.com/v1/payments/confirm",
			Timeout:    10 * time.Second,
		},
		Cookie: config.CookieConfig{
			Domain: "",
			Secure: false,
		},
		Moderation: config.ModerationConfig{
			AutoSuppressThreshold: 10,
		},
		CORS: config.CORSConfig{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           86400,
		},
		Server: config.ServerConfig{
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			GracefulTimeout: 30 * time.Second,
		},
	}
}
