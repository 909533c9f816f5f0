package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/wsbridge/wsbridge-go/cert"
	"github.com/wsbridge/wsbridge-go/logging"
	"github.com/wsbridge/wsbridge-go/model"
	ordered "gitlab.com/c0b/go-ordered-json"
)

var (
	ErrMissingEndpoint = errors.New("endpoint is not configured")
	ErrInvalidEndpoint = errors.New("endpoint is not a valid websocket URI")
)

var cookieListSeparator = regexp.MustCompile(`\s*,\s*`)

// SourceConfig holds the ingress options. It is immutable after NewSourceConfig.
type SourceConfig struct {
	endpoint    *string
	initMessage *string
	retryDelay  int
	sslEnabled  bool
	keyStore    cert.KeyStoreOptions
	trustAll    bool
	cookies     *ordered.OrderedMap
}

func NewSourceConfig(props Properties) *SourceConfig {
	return &SourceConfig{
		endpoint:    props.StringPtr(KeyEndpoint),
		initMessage: props.StringPtr(KeyInitMessage),
		retryDelay:  retryDelay(props),
		sslEnabled:  props.Bool(KeySSLEnabled, false),
		keyStore:    keyStoreOptions(props),
		trustAll:    props.Bool(KeyTrustAllCerts, false),
		cookies:     parseCookies(props),
	}
}

// delays below MinRetryDelay are raised to it
func retryDelay(props Properties) int {
	delay := props.Int(KeyRetryDelay, DefaultRetryDelay)
	if delay < MinRetryDelay {
		logging.Log().Debugf("property %s: %d is below %d, using %d", KeyRetryDelay, delay, MinRetryDelay, MinRetryDelay)
		return MinRetryDelay
	}
	return delay
}

// RawEndpoint returns the endpoint as configured, empty if missing
func (c *SourceConfig) RawEndpoint() string {
	if c.endpoint == nil {
		return ""
	}
	return *c.endpoint
}

// EndpointURL parses the configured endpoint
func (c *SourceConfig) EndpointURL() (*url.URL, error) {
	if c.endpoint == nil || *c.endpoint == "" {
		return nil, ErrMissingEndpoint
	}

	u, err := url.Parse(*c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEndpoint, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidEndpoint, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidEndpoint)
	}

	return u, nil
}

func (c *SourceConfig) HasInitMessage() bool {
	return c.initMessage != nil
}

func (c *SourceConfig) InitMessage() string {
	if c.initMessage == nil {
		return ""
	}
	return *c.initMessage
}

// RetryDelayS returns the retry delay in whole seconds as configured
func (c *SourceConfig) RetryDelayS() int {
	return c.retryDelay
}

func (c *SourceConfig) RetryDelay() time.Duration {
	return time.Duration(c.retryDelay) * time.Second
}

func (c *SourceConfig) SSLEnabled() bool {
	return c.sslEnabled
}

func (c *SourceConfig) KeyStore() cert.KeyStoreOptions {
	return c.keyStore
}

func (c *SourceConfig) TrustAllCerts() bool {
	return c.trustAll
}

func (c *SourceConfig) TrustPolicy() model.TrustPolicy {
	return model.TrustPolicyFromFlag(c.trustAll)
}

// Cookies returns a copy of the cookie name to value mapping in discovery order
func (c *SourceConfig) Cookies() *ordered.OrderedMap {
	return copyOrdered(c.cookies)
}

func keyStoreOptions(props Properties) cert.KeyStoreOptions {
	return cert.KeyStoreOptions{
		Type:     props.String(KeyKeyStoreType, ""),
		Path:     props.String(KeyKeyStorePath, ""),
		Password: props.String(KeyKeyStorePass, ""),
	}
}

// ids listed in "cookies" are resolved through cookie.<id>.name and cookie.<id>.value,
// ids missing either key are skipped
func parseCookies(props Properties) *ordered.OrderedMap {
	cookies := ordered.NewOrderedMap()

	list, ok := props[KeyCookies]
	if !ok {
		return cookies
	}

	fields := props.SubProperties(KeyCookiePrefix)
	for _, id := range cookieListSeparator.Split(list, -1) {
		if id == "" {
			continue
		}
		name, hasName := fields[id+".name"]
		value, hasValue := fields[id+".value"]
		if !hasName || !hasValue {
			continue
		}
		cookies.Set(name, value)
	}

	return cookies
}

func copyOrdered(source *ordered.OrderedMap) *ordered.OrderedMap {
	result := ordered.NewOrderedMap()
	if source == nil {
		return result
	}
	iter := source.EntriesIter()
	for {
		pair, ok := iter()
		if !ok {
			break
		}
		result.Set(pair.Key, pair.Value)
	}
	return result
}
