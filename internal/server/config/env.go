package config

import (
	"github.com/dmitrijs2005/beautystore/internal/envx"
	"github.com/dmitrijs2005/beautystore/internal/flagx"
)

// Environment variables read by parseEnv.
const (
	EnvGRPCAddr            = "BEAUTYSTORE_GRPC_ADDR"
	EnvDatabaseDSN         = "BEAUTYSTORE_DATABASE_DSN"
	EnvSecretKey           = "BEAUTYSTORE_SECRET_KEY"
	EnvAccessTokenValidity = "BEAUTYSTORE_ACCESS_TOKEN_VALIDITY"
	EnvSignInRate          = "BEAUTYSTORE_SIGN_IN_RATE_PER_MINUTE"
	EnvSignInBurst         = "BEAUTYSTORE_SIGN_IN_BURST"
	EnvS3Enabled           = "BEAUTYSTORE_S3_ENABLED"
	EnvS3RootUser          = "BEAUTYSTORE_S3_ROOT_USER"
	EnvS3RootPassword      = "BEAUTYSTORE_S3_ROOT_PASSWORD"
	EnvS3Bucket            = "BEAUTYSTORE_S3_BUCKET"
	EnvS3Region            = "BEAUTYSTORE_S3_REGION"
	EnvS3BaseEndpoint      = "BEAUTYSTORE_S3_BASE_ENDPOINT"
	EnvImageURLExpiry      = "BEAUTYSTORE_IMAGE_URL_EXPIRY"
	EnvLogLevel            = "BEAUTYSTORE_LOG_LEVEL"
)

// parseEnv overlays Config with BEAUTYSTORE_* variables after loading the
// dotenv file named by -env (or ./.env). Malformed values panic.
func parseEnv(cfg *Config) {
	if err := envx.LoadDotEnv(flagx.EnvFileFlag()); err != nil {
		panic(err)
	}

	envx.String(EnvGRPCAddr, &cfg.EndpointAddrGRPC)
	envx.String(EnvDatabaseDSN, &cfg.DatabaseDSN)
	envx.String(EnvSecretKey, &cfg.SecretKey)
	envx.String(EnvS3RootUser, &cfg.S3RootUser)
	envx.String(EnvS3RootPassword, &cfg.S3RootPassword)
	envx.String(EnvS3Bucket, &cfg.S3Bucket)
	envx.String(EnvS3Region, &cfg.S3Region)
	envx.String(EnvS3BaseEndpoint, &cfg.S3BaseEndpoint)
	envx.String(EnvLogLevel, &cfg.LogLevel)

	must(envx.Duration(EnvAccessTokenValidity, &cfg.AccessTokenValidityDuration))
	must(envx.Duration(EnvImageURLExpiry, &cfg.ImageURLExpiry))
	must(envx.Bool(EnvS3Enabled, &cfg.S3Enabled))
	must(envx.Int(EnvSignInRate, &cfg.SignInRatePerMinute))
	must(envx.Int(EnvSignInBurst, &cfg.SignInBurst))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
