package model

import (
	"encoding/json"
	"fmt"
)

// BackendConfig is the backend's configuration document. Raw is kept
// verbatim; the typed fields are a convenience decode.
type BackendConfig struct {
	Raw            string              `json:"-"`
	VSTSearchPaths map[string][]string `json:"vstSearchPaths"`
}

// ParseBackendConfig decodes the JSON document sent with Config packets
// and GetConfig replies.
func ParseBackendConfig(raw string) (BackendConfig, error) {
	cfg := BackendConfig{Raw: raw}
	if raw == "" {
		return cfg, nil
	}
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return cfg, fmt.Errorf("model: decode backend config: %w", err)
	}
	return cfg, nil
}
