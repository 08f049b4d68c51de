package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// New returns the process configuration as a flat key/value map. Values from an
// optional chirp.yaml (looked up in . and ./config) are applied first and the
// environment overrides them.
func New() map[string]string {
	return Load(".", "./config")
}

// Load is New with explicit search paths for the config file.
func Load(paths ...string) map[string]string {
	config := fromFile(paths...)
	for _, entry := range os.Environ() {
		if entry != "" {
			key, value := split(entry)
			config[key] = value
		}
	}
	return config
}

// fromFile flattens nested keys so that `db: {host: x}` becomes DB_HOST.
func fromFile(paths ...string) map[string]string {
	values := make(map[string]string)

	v := viper.New()
	v.SetConfigName("chirp")
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}
	if err := v.ReadInConfig(); err != nil {
		return values
	}

	for _, key := range v.AllKeys() {
		name := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		values[name] = v.GetString(key)
	}
	return values
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetBool(config map[string]string, key string, defaultValue bool) bool {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asBool, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}

	return asBool
}

// GetStrings splits a comma separated value, dropping blank items.
func GetStrings(config map[string]string, key string) []string {
	raw := GetString(config, key, "")
	if raw == "" {
		return nil
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
