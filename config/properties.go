package config

import (
	"strconv"
	"strings"

	"github.com/wsbridge/wsbridge-go/logging"
	"github.com/wsbridge/wsbridge-go/util"
)

// Properties is the flat key/value bag the host hands to configure
type Properties map[string]string

// returns the value for key or def if the key is missing
func (p Properties) String(key, def string) string {
	if value, ok := p[key]; ok {
		return value
	}
	return def
}

// returns the value for key or nil if the key is missing
func (p Properties) StringPtr(key string) *string {
	if value, ok := p[key]; ok {
		return util.Ptr(value)
	}
	return nil
}

func (p Properties) Int(key string, def int) int {
	value, ok := p[key]
	if !ok {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		logging.Log().Debugf("property %s: %q is not an integer, using %d", key, value, def)
		return def
	}
	return i
}

func (p Properties) Bool(key string, def bool) bool {
	value, ok := p[key]
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		logging.Log().Debugf("property %s: %q is not a boolean, using %t", key, value, def)
		return def
	}
	return b
}

// SubProperties returns all entries whose key starts with prefix, with the prefix removed
func (p Properties) SubProperties(prefix string) Properties {
	result := make(Properties)
	for key, value := range p {
		if strings.HasPrefix(key, prefix) {
			result[strings.TrimPrefix(key, prefix)] = value
		}
	}
	return result
}

func (p Properties) Clone() Properties {
	result := make(Properties, len(p))
	for key, value := range p {
		result[key] = value
	}
	return result
}
