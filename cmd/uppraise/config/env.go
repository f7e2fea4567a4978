package config

import (
	"errors"
	"fmt"
	"os"

	internalconfig "github.com/cisglee/uppraisal/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// DefaultEnvFile is loaded when present and --env-file is not given
const DefaultEnvFile = ".env"

// Env exposes UPPRAISAL_* environment variables
var Env = newEnv()

func newEnv() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(internalconfig.DefaultEnvPrefix)
	v.AutomaticEnv()
	return v
}

// LoadEnvironment loads the .env file, if any, and fills flags the user did
// not set from UPPRAISAL_TOKEN and UPPRAISAL_BASE_URL. Flags win over the
// environment, which wins over defaults.
func LoadEnvironment(cmd *cobra.Command) error {
	path := Global.EnvFile
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}

	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}

	flags := cmd.Flags()
	if !flags.Changed("token") {
		if token := Env.GetString("token"); token != "" {
			Global.Token = token
		}
	}
	if !flags.Changed("base-url") {
		if baseURL := Env.GetString("base_url"); baseURL != "" {
			Global.BaseURL = baseURL
		}
	}
	return nil
}
