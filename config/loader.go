package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/imdario/mergo"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Role names used as top level sections in YAML files and as key prefixes
const (
	RoleSource = "source"
	RoleSink   = "sink"
)

// FromYAMLFile reads a document with one section per role, e.g.
//
//	source:
//	  endpoint: wss://example.com/feed
//	  retryDelay: 5
//	sink:
//	  port: 8080
//
// Scalar values of any type are converted to their string form.
func FromYAMLFile(path string) (map[string]Properties, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "file read failed")
	}

	raw := make(map[string]map[string]interface{})
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "parsing %s failed", path)
	}

	result := make(map[string]Properties, len(raw))
	for role, section := range raw {
		props := make(Properties, len(section))
		for key, value := range section {
			if value == nil {
				continue
			}
			switch value.(type) {
			case map[string]interface{}, []interface{}:
				return nil, errors.Errorf("%s: %s.%s must be a scalar", path, role, key)
			}
			props[key] = fmt.Sprint(value)
		}
		result[role] = props
	}

	return result, nil
}

// FromPropertiesFile reads a flat KEY=VALUE file
func FromPropertiesFile(path string) (Properties, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading properties %s failed", path)
	}
	return Properties(values), nil
}

// ParseAssignments converts key=value strings into properties
func ParseAssignments(assignments []string) (Properties, error) {
	result := make(Properties, len(assignments))
	for _, assignment := range assignments {
		key, value, ok := strings.Cut(assignment, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.Errorf("invalid assignment %q, expected key=value", assignment)
		}
		result[key] = value
	}
	return result, nil
}

// Merge overlays src onto dst, values in src win
func Merge(dst Properties, src Properties) (Properties, error) {
	result := dst.Clone()
	if err := mergo.Merge(&result, src, mergo.WithOverride); err != nil {
		return nil, errors.Wrap(err, "merging properties failed")
	}
	return result, nil
}

// ForRole splits properties prefixed with "<role>." from a combined bag
func ForRole(props Properties, role string) Properties {
	return props.SubProperties(role + ".")
}
