package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	HTTPPort string

	// StoreTimeout bounds every round-trip to the backing store.
	StoreTimeout time.Duration

	// ClaimMaxAttempts bounds how many pending candidates a single claim
	// call may try before reporting contention.
	ClaimMaxAttempts int
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",
		HTTPPort:         "9446",
		StoreTimeout:     5 * time.Second,
		ClaimMaxAttempts: 5,
	}

	envPostgresAddress := os.Getenv("POSTGRES_ADDRESS")
	envPostgresPort := os.Getenv("POSTGRES_PORT")
	envPostgresDB := os.Getenv("POSTGRES_DB")
	envPostgresUsername := os.Getenv("POSTGRES_USERNAME")
	envPostgresPassword := os.Getenv("POSTGRES_PASSWORD")
	envHTTPPort := os.Getenv("HTTP_PORT")
	envStoreTimeout := os.Getenv("STORE_TIMEOUT")
	envClaimMaxAttempts := os.Getenv("CLAIM_MAX_ATTEMPTS")

	if len(envPostgresAddress) != 0 {
		env.PostgresAddress = envPostgresAddress
	}

	if len(envPostgresPort) != 0 {
		env.PostgresPort = envPostgresPort
	}

	if len(envPostgresDB) != 0 {
		env.PostgresDB = envPostgresDB
	}

	if len(envPostgresUsername) != 0 {
		env.PostgresUsername = envPostgresUsername
	}

	if len(envPostgresPassword) != 0 {
		env.PostgresPassword = envPostgresPassword
	}

	if len(envHTTPPort) != 0 {
		env.HTTPPort = envHTTPPort
	}

	if len(envStoreTimeout) != 0 {
		storeTimeout, err := time.ParseDuration(envStoreTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid STORE_TIMEOUT %q: %w", envStoreTimeout, err)
		}
		env.StoreTimeout = storeTimeout
	}

	if len(envClaimMaxAttempts) != 0 {
		claimMaxAttempts, err := strconv.Atoi(envClaimMaxAttempts)
		if err != nil || claimMaxAttempts < 1 {
			return nil, fmt.Errorf("invalid CLAIM_MAX_ATTEMPTS %q", envClaimMaxAttempts)
		}
		env.ClaimMaxAttempts = claimMaxAttempts
	}

	return &env, nil
}
