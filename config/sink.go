package config

import (
	"net"
	"strconv"

	"github.com/wsbridge/wsbridge-go/cert"
	"github.com/wsbridge/wsbridge-go/model"
)

// SinkConfig holds the egress options. It is immutable after NewSinkConfig.
type SinkConfig struct {
	host       string
	port       int
	sslEnabled bool
	keyStore   cert.KeyStoreOptions
	trustAll   bool
	requestLog bool
}

func NewSinkConfig(props Properties) *SinkConfig {
	return &SinkConfig{
		host:       props.String(KeyHost, DefaultHost),
		port:       props.Int(KeyPort, DefaultPort),
		sslEnabled: props.Bool(KeySSLEnabled, false),
		keyStore:   keyStoreOptions(props),
		trustAll:   props.Bool(KeyTrustAllCerts, false),
		requestLog: props.Bool(KeyRequestLogging, false),
	}
}

func (c *SinkConfig) Host() string {
	return c.host
}

func (c *SinkConfig) Port() int {
	return c.port
}

// Address returns the bind address as host:port
func (c *SinkConfig) Address() string {
	return net.JoinHostPort(c.host, strconv.Itoa(c.port))
}

func (c *SinkConfig) SSLEnabled() bool {
	return c.sslEnabled
}

func (c *SinkConfig) KeyStore() cert.KeyStoreOptions {
	return c.keyStore
}

func (c *SinkConfig) TrustAllCerts() bool {
	return c.trustAll
}

func (c *SinkConfig) TrustPolicy() model.TrustPolicy {
	return model.TrustPolicyFromFlag(c.trustAll)
}

// RequestLogging reports whether websocket upgrade requests are logged
func (c *SinkConfig) RequestLogging() bool {
	return c.requestLog
}
