package bootstrap

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:        "mongodb://localhost:27017",
		MongoDatabase:   "taskhub_test",
		TokenSecret:     "0123456789abcdef0123456789abcdef",
		TokenIssuer:     "taskhub",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func TestValidateConfig(t *testing.T) {
	logger := zap.NewNop()

	if err := ValidateConfig(nil, validAppConfig(), logger); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cfg := validAppConfig()
	cfg.MongoURI = "not-a-mongo-uri"
	if err := ValidateConfig(nil, cfg, logger); err == nil {
		t.Error("bad mongo URI accepted")
	}

	cfg = validAppConfig()
	cfg.TokenSecret = "too-short"
	err := ValidateConfig(nil, cfg, logger)
	if err == nil {
		t.Fatal("short token secret accepted")
	}
	if !strings.Contains(err.Error(), "token_secret") {
		t.Errorf("error = %v, want mention of token_secret", err)
	}

	cfg = validAppConfig()
	cfg.AccessTokenTTL = 0
	if err := ValidateConfig(nil, cfg, logger); err == nil {
		t.Error("zero access token TTL accepted")
	}
}
