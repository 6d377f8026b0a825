// Package artifact reads fitted model artifacts from disk.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeFile unmarshals a JSON or YAML artifact, chosen by file extension.
func DecodeFile(path string, v interface{}) error {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return err
	}
	return Decode(filepath.Ext(path), content, v)
}

func Decode(ext string, content []byte, v interface{}) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, v); err != nil {
			return fmt.Errorf("decode yaml artifact: %w", err)
		}
	case ".json", "":
		if err := json.Unmarshal(content, v); err != nil {
			return fmt.Errorf("decode json artifact: %w", err)
		}
	default:
		return fmt.Errorf("unsupported artifact format %q", ext)
	}
	return nil
}
