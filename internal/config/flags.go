package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// ParseFlags parses the global configuration flags from args (without the
// program name). Parsing stops at the first positional argument so that a
// command and its own flags are returned untouched in rest.
//
// Flags:
//
//	-a, --address          backend base URL
//	    --request-timeout  request timeout (e.g. "30s")
//	    --auth-prefix      path prefix of the authentication endpoints
//	-d, --db               vault database DSN
//	    --keystore         key provider backend: keyring, file, memory
//	    --keystore-service OS keyring service name
//	    --key-alias        logical alias of the vault key
//	    --key-file         wrapped key file for the file backend
//	-c, --config           JSON config file path
//	    --log-level        log level
//	    --log-file         log file path
func ParseFlags(args []string) (*StructuredConfig, []string, error) {
	var (
		address         string
		requestTimeout  time.Duration
		authPrefix      string
		databaseDSN     string
		keystoreBackend string
		keystoreService string
		keyAlias        string
		keyFile         string
		jsonConfigPath  string
		logLevel        string
		logFile         string
	)

	fs := pflag.NewFlagSet("client", pflag.ContinueOnError)
	fs.SetInterspersed(false)

	fs.StringVarP(&address, "address", "a", "", "Backend base URL")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&authPrefix, "auth-prefix", "", "Path prefix of authentication endpoints")
	fs.StringVarP(&databaseDSN, "db", "d", "", "Vault database DSN")
	fs.StringVar(&keystoreBackend, "keystore", "", "Key provider backend (keyring, file, memory)")
	fs.StringVar(&keystoreService, "keystore-service", "", "OS keyring service name")
	fs.StringVar(&keyAlias, "key-alias", "", "Alias of the vault key")
	fs.StringVar(&keyFile, "key-file", "", "Wrapped key file for the file backend")
	fs.StringVarP(&jsonConfigPath, "config", "c", "", "JSON config file path")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&logFile, "log-file", "", "Log file path")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Adapter: Adapter{
			HTTPAddress:    address,
			RequestTimeout: requestTimeout,
			AuthPathPrefix: authPrefix,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Keystore: Keystore{
			Backend: keystoreBackend,
			Service: keystoreService,
			Alias:   keyAlias,
			KeyFile: keyFile,
		},
		Log: Log{
			Level: logLevel,
			File:  logFile,
		},
		JSONFilePath: jsonConfigPath,
	}, fs.Args(), nil
}
