package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/advboard/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a  string   HTTP bind address (e.g., ":8080")
//	-dh string   PostgreSQL host
//	-dp string   PostgreSQL port
//	-du string   PostgreSQL user
//	-dw string   PostgreSQL password
//	-dn string   PostgreSQL database name
//	-ds string   PostgreSQL sslmode
//	-s  string   JWT HMAC secret key
//	-t  int      access token validity, minutes
//	-l  string   log level
//
// args is filtered down to the flags above first so that -c/-config and
// flags owned by other components do not trip the parser.
func parseFlags(config *Config, args []string) {
	args = flagx.Filter(args, "-a", "-dh", "-dp", "-du", "-dw", "-dn", "-ds", "-s", "-t", "-l")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DBHost, "dh", config.DBHost, "database host")
	fs.StringVar(&config.DBPort, "dp", config.DBPort, "database port")
	fs.StringVar(&config.DBUser, "du", config.DBUser, "database user")
	fs.StringVar(&config.DBPassword, "dw", config.DBPassword, "database password")
	fs.StringVar(&config.DBName, "dn", config.DBName, "database name")
	fs.StringVar(&config.DBSSLMode, "ds", config.DBSSLMode, "database sslmode")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only touch the duration when -t was given, so sub-minute values from
	// JSON or the environment survive
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		}
	})
}
