package util

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const dotEnvFile = ".env"

// GetEnvironmentVariables returns the process environment with any values
// from a local .env file filled in underneath. Real environment variables
// always win over the file.
func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	if dotEnv, err := godotenv.Read(dotEnvFile); err == nil {
		for key, value := range dotEnv {
			environmentVariables[key] = value
		}
	}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

func GetEnvironmentVariable(name string, fallback string) string {
	if value := GetEnvironmentVariables()[name]; value != "" {
		return value
	}

	return fallback
}
