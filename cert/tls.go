package cert

import (
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"

	"github.com/wsbridge/wsbridge-go/logging"
	"github.com/wsbridge/wsbridge-go/model"
)

// NewTLSConfig builds a TLS configuration from a keystore.
//
// Private key entries are presented as own certificates. With TrustPolicyTrustAll every
// remote certificate is accepted, otherwise the system roots plus all keystore
// certificates are trusted, both for server and client verification.
func NewTLSConfig(opts KeyStoreOptions, policy model.TrustPolicy) (*tls.Config, error) {
	store, err := LoadKeyStore(opts)
	if err != nil {
		logging.Log().Error("keystore could not be loaded:", err)
		return nil, err
	}

	config := baseConfig()
	config.Certificates = store.Certificates

	if policy == model.TrustPolicyTrustAll {
		applyTrustAll(config)
		return config, nil
	}

	logging.Log().Debug("using default trust with keystore certificates")
	config.RootCAs = store.CertPool(systemPool())
	config.ClientCAs = store.CertPool(nil)

	return config, nil
}

// DefaultTLSConfig returns the platform default configuration without own key material.
// TrustPolicyTrustAll is honoured.
func DefaultTLSConfig(policy model.TrustPolicy) *tls.Config {
	config := baseConfig()
	if policy == model.TrustPolicyTrustAll {
		applyTrustAll(config)
	}
	return config
}

func baseConfig() *tls.Config {
	return &tls.Config{
		MinVersion: tls.VersionTLS12,
		Rand:       rand.Reader,
	}
}

func applyTrustAll(config *tls.Config) {
	logging.Log().Info("trusting all certificates, remote identities are not verified")
	config.InsecureSkipVerify = true // #nosec G402
}

func systemPool() *x509.CertPool {
	pool, err := x509.SystemCertPool()
	if err != nil || pool == nil {
		logging.Log().Debug("system certificate pool unavailable:", err)
		return x509.NewCertPool()
	}
	return pool
}
