package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/advboard/internal/flagx"
	"github.com/dmitrijs2005/advboard/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Pointer fields
// distinguish "absent" from "empty" so a partial file only overrides what it
// names.
type JsonConfig struct {
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	DBHost                      *string         `json:"db_host"`
	DBPort                      *string         `json:"db_port"`
	DBUser                      *string         `json:"db_user"`
	DBPassword                  *string         `json:"db_password"`
	DBName                      *string         `json:"db_name"`
	DBSSLMode                   *string         `json:"db_sslmode"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	LogLevel                    *string         `json:"log_level"`
}

// parseJson loads the file named by -c / -config into config. Nothing
// happens when neither flag is given. An unreadable file or invalid JSON
// panics, since the process cannot start with a half-read configuration.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DBHost, c.DBHost)
	setString(&config.DBPort, c.DBPort)
	setString(&config.DBUser, c.DBUser)
	setString(&config.DBPassword, c.DBPassword)
	setString(&config.DBName, c.DBName)
	setString(&config.DBSSLMode, c.DBSSLMode)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
