package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/arnorgym/internal/flagx"
	"github.com/dmitrijs2005/arnorgym/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Absent fields keep
// the value from earlier sources.
type JsonConfig struct {
	StorageDSN      *string         `json:"storage_dsn"`
	SessionDSN      *string         `json:"session_dsn"`
	PostgresDSN     *string         `json:"postgres_dsn"`
	ExportURI       *string         `json:"export_uri"`
	LogLevel        *string         `json:"log_level"`
	LogFormat       *string         `json:"log_format"`
	RedirectDelay   *timex.Duration `json:"redirect_delay"`
	ModeSwitchDelay *timex.Duration `json:"mode_switch_delay"`
	HTTPTimeout     *timex.Duration `json:"http_timeout"`
	S3Region        *string         `json:"s3_region"`
	S3BaseEndpoint  *string         `json:"s3_base_endpoint"`
	S3AccessKey     *string         `json:"s3_access_key"`
	S3SecretKey     *string         `json:"s3_secret_key"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
// Panics on read or decode errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.StorageDSN, jc.StorageDSN)
	setString(&cfg.SessionDSN, jc.SessionDSN)
	setString(&cfg.PostgresDSN, jc.PostgresDSN)
	setString(&cfg.ExportURI, jc.ExportURI)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	if jc.RedirectDelay != nil {
		cfg.RedirectDelay = jc.RedirectDelay.Duration
	}
	if jc.ModeSwitchDelay != nil {
		cfg.ModeSwitchDelay = jc.ModeSwitchDelay.Duration
	}
	if jc.HTTPTimeout != nil {
		cfg.HTTPTimeout = jc.HTTPTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
