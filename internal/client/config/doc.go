// Package config loads runtime configuration for the storefront client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment: a dotenv file (-env, default ./.env) and BEAUTYSTORE_*
//     variables (see parseEnv). Variables already set win over the file.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-i int      online status check interval (seconds)
//	-t int      per-call request timeout (seconds)
//	-d string   local SQLite store
//	-k string   device key file
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "db_path": "beautystore.db",
//	  "key_file": "beautystore.key",
//	  "log_level": "info"
//	}
package config
