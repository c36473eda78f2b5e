package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/EfeDurmaz16/assos/src/data"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// ConfigFileEnv names the optional config file read on top of the environment.
const ConfigFileEnv = "ASSOS_CONFIG"

var (
	vmu sync.RWMutex
	v   = newViper()
)

func newViper() *viper.Viper {
	vp := viper.New()
	vp.AutomaticEnv()
	return vp
}

// Init reads the optional config file named by ASSOS_CONFIG on top of the environment.
func Init() error {
	vp := newViper()
	if path := strings.TrimSpace(os.Getenv(ConfigFileEnv)); path != "" {
		vp.SetConfigFile(path)
		if err := vp.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	vmu.Lock()
	v = vp
	vmu.Unlock()
	return nil
}

// LoadDatabaseSettings caches the settings table so DB values override the environment.
func LoadDatabaseSettings(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := data.LoadSettings(db); err != nil {
		return fmt.Errorf("config: load settings: %w", err)
	}
	return nil
}

// GetSetting retrieves a setting from the DB cache, then the environment or
// config file, then the default.
func GetSetting(name, envKey, defaultValue string) string {
	val := data.GetSetting(name)
	if val == "" && envKey != "" {
		vmu.RLock()
		val = v.GetString(envKey)
		vmu.RUnlock()
	}
	if val == "" {
		val = defaultValue
	}
	return strings.TrimSpace(val)
}

func getBoolSetting(name, envKey string, defaultValue bool) bool {
	raw := strings.ToLower(GetSetting(name, envKey, ""))
	switch raw {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}

func getIntSetting(name, envKey string, defaultValue int) int {
	if raw := GetSetting(name, envKey, ""); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getFloatSetting(name, envKey string, defaultValue float64) float64 {
	if raw := GetSetting(name, envKey, ""); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil && f >= 0 {
			return f
		}
	}
	return defaultValue
}

func parseCSV(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '|' || r == ' '
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
