package api

import (
	_ "embed"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v3"
)

//go:embed capabilities.yaml
var capabilitiesYAML []byte

func loadCapabilities() (map[string]any, error) {
	var caps map[string]any
	if err := yaml.Unmarshal(capabilitiesYAML, &caps); err != nil {
		return nil, errors.Wrap(err, "parse capabilities manifest")
	}
	return caps, nil
}
