package config

import (
	"time"
)

// parseEnv overlays values from the process environment. lookup has the
// signature of os.LookupEnv. Unparseable durations are ignored.
func parseEnv(config *Config, lookup func(string) (string, bool)) {
	vars := map[string]*string{
		"HTTP_ADDR":         &config.EndpointAddrHTTP,
		"POSTGRES_HOST":     &config.DBHost,
		"POSTGRES_PORT":     &config.DBPort,
		"POSTGRES_USER":     &config.DBUser,
		"POSTGRES_PASSWORD": &config.DBPassword,
		"POSTGRES_DB":       &config.DBName,
		"POSTGRES_SSLMODE":  &config.DBSSLMode,
		"SECRET_KEY":        &config.SecretKey,
		"LOG_LEVEL":         &config.LogLevel,
	}
	for name, dst := range vars {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("ACCESS_TOKEN_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.AccessTokenValidityDuration = d
		}
	}
}
