package config

import (
	"github.com/dmitrijs2005/beautystore/internal/envx"
	"github.com/dmitrijs2005/beautystore/internal/flagx"
)

// Environment variables read by parseEnv.
const (
	EnvServerAddr          = "BEAUTYSTORE_SERVER_ADDR"
	EnvOnlineCheckInterval = "BEAUTYSTORE_ONLINE_CHECK_INTERVAL"
	EnvRequestTimeout      = "BEAUTYSTORE_REQUEST_TIMEOUT"
	EnvDBPath              = "BEAUTYSTORE_DB_PATH"
	EnvKeyFile             = "BEAUTYSTORE_KEY_FILE"
	EnvLogLevel            = "BEAUTYSTORE_LOG_LEVEL"
)

// parseEnv overlays Config with BEAUTYSTORE_* variables, after loading the
// dotenv file named by -env (or ./.env). It panics on malformed durations,
// like the other loaders do on malformed input.
func parseEnv(cfg *Config) {
	if err := envx.LoadDotEnv(flagx.EnvFileFlag()); err != nil {
		panic(err)
	}

	envx.String(EnvServerAddr, &cfg.ServerEndpointAddr)
	envx.String(EnvDBPath, &cfg.DBPath)
	envx.String(EnvKeyFile, &cfg.KeyFile)
	envx.String(EnvLogLevel, &cfg.LogLevel)

	if err := envx.Duration(EnvOnlineCheckInterval, &cfg.OnlineCheckInterval); err != nil {
		panic(err)
	}
	if err := envx.Duration(EnvRequestTimeout, &cfg.RequestTimeout); err != nil {
		panic(err)
	}
}
