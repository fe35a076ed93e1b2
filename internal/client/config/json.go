package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dkozyrev/jobtrack/internal/flagx"
	"github.com/dkozyrev/jobtrack/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	CloudEndpointAddr   string         `json:"cloud_endpoint_addr"`
	DatabasePath        string         `json:"database_path"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flags via
// flagx.JsonConfigFlags(); when no path is given the function returns
// without touching cfg. Read or unmarshal errors panic (caller should
// recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.CloudEndpointAddr = jc.CloudEndpointAddr
	cfg.DatabasePath = jc.DatabasePath
	cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
}
