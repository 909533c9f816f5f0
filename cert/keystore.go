package cert

import (
	"bytes"
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"strings"

	pkgerrors "github.com/pkg/errors"
	keystore "github.com/pavlo-v-chernykh/keystore-go/v4"
	"github.com/wsbridge/wsbridge-go/logging"
	"golang.org/x/crypto/pkcs12"
)

// Supported keystore types, matched case-insensitively
const (
	TypeJKS    = "JKS"
	TypePKCS12 = "PKCS12"
	TypeP12    = "P12"
	TypePFX    = "PFX"
	TypePEM    = "PEM"
)

var (
	ErrUnsupportedKeyStoreType = errors.New("unsupported keystore type")
	ErrMissingKeyStorePath     = errors.New("keystore path is not configured")
	ErrNoKeyMaterial           = errors.New("keystore contains no usable entries")
)

// KeyStoreOptions locates a keystore file on disk
type KeyStoreOptions struct {
	Type     string
	Path     string
	Password string
}

// IsSet reports whether a keystore file was configured at all
func (o KeyStoreOptions) IsSet() bool {
	return o.Path != ""
}

// KeyStore is the key material and trust anchors read from a keystore file
type KeyStore struct {
	// certificates with private keys, offered to the remote side
	Certificates []tls.Certificate
	// trusted certificates, used to verify the remote side
	CAs []*x509.Certificate
}

// CertPool returns the CAs together with every certificate of the own chains
func (k *KeyStore) CertPool(base *x509.CertPool) *x509.CertPool {
	pool := base
	if pool == nil {
		pool = x509.NewCertPool()
	}

	for _, ca := range k.CAs {
		pool.AddCert(ca)
	}
	for _, certificate := range k.Certificates {
		for _, der := range certificate.Certificate {
			if parsed, err := x509.ParseCertificate(der); err == nil {
				pool.AddCert(parsed)
			}
		}
	}

	return pool
}

// LoadKeyStore reads the keystore described by opts.
// An empty type defaults to JKS.
func LoadKeyStore(opts KeyStoreOptions) (*KeyStore, error) {
	if opts.Path == "" {
		return nil, ErrMissingKeyStorePath
	}

	storeType := strings.ToUpper(strings.TrimSpace(opts.Type))
	if storeType == "" {
		storeType = TypeJKS
	}

	logging.Log().Debugf("keystore details: type %s path %s", storeType, opts.Path)

	var parse func([]byte, string) (*KeyStore, error)
	switch storeType {
	case TypeJKS:
		parse = parseJKS
	case TypePKCS12, TypeP12, TypePFX:
		parse = parsePKCS12
	case TypePEM:
		parse = parsePEM
	default:
		return nil, pkgerrors.Wrap(ErrUnsupportedKeyStoreType, opts.Type)
	}

	data, err := os.ReadFile(opts.Path)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "keystore read failed")
	}

	result, err := parse(data, opts.Password)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "loading %s keystore %s failed", storeType, opts.Path)
	}
	if len(result.Certificates) == 0 && len(result.CAs) == 0 {
		return nil, pkgerrors.Wrap(ErrNoKeyMaterial, opts.Path)
	}

	return result, nil
}

func parseJKS(data []byte, password string) (*KeyStore, error) {
	ks := keystore.New()
	if err := ks.Load(bytes.NewReader(data), []byte(password)); err != nil {
		return nil, err
	}

	result := &KeyStore{}
	for _, alias := range ks.Aliases() {
		switch {
		case ks.IsPrivateKeyEntry(alias):
			entry, err := ks.GetPrivateKeyEntry(alias, []byte(password))
			if err != nil {
				return nil, pkgerrors.Wrapf(err, "entry %s", alias)
			}
			certificate, err := jksCertificate(entry)
			if err != nil {
				return nil, pkgerrors.Wrapf(err, "entry %s", alias)
			}
			result.Certificates = append(result.Certificates, certificate)

		case ks.IsTrustedCertificateEntry(alias):
			entry, err := ks.GetTrustedCertificateEntry(alias)
			if err != nil {
				return nil, pkgerrors.Wrapf(err, "entry %s", alias)
			}
			ca, err := x509.ParseCertificate(entry.Certificate.Content)
			if err != nil {
				return nil, pkgerrors.Wrapf(err, "entry %s", alias)
			}
			result.CAs = append(result.CAs, ca)
		}
	}

	return result, nil
}

func jksCertificate(entry keystore.PrivateKeyEntry) (tls.Certificate, error) {
	key, err := x509.ParsePKCS8PrivateKey(entry.PrivateKey)
	if err != nil {
		return tls.Certificate{}, err
	}

	var certificate tls.Certificate
	for _, item := range entry.CertificateChain {
		certificate.Certificate = append(certificate.Certificate, item.Content)
	}
	if len(certificate.Certificate) == 0 {
		return tls.Certificate{}, errors.New("private key without certificate chain")
	}

	leaf, err := x509.ParseCertificate(certificate.Certificate[0])
	if err != nil {
		return tls.Certificate{}, err
	}
	if !publicKeyMatches(leaf, key) {
		return tls.Certificate{}, errors.New("private key does not match certificate")
	}

	certificate.PrivateKey = key
	certificate.Leaf = leaf
	return certificate, nil
}

func publicKeyMatches(leaf *x509.Certificate, key crypto.PrivateKey) bool {
	switch private := key.(type) {
	case *rsa.PrivateKey:
		return private.PublicKey.Equal(leaf.PublicKey)
	case *ecdsa.PrivateKey:
		return private.PublicKey.Equal(leaf.PublicKey)
	case ed25519.PrivateKey:
		return private.Public().(ed25519.PublicKey).Equal(leaf.PublicKey)
	}
	return false
}

func parsePKCS12(data []byte, password string) (*KeyStore, error) {
	blocks, err := pkcs12.ToPEM(data, password)
	if err != nil {
		return nil, err
	}

	var pemData []byte
	for _, block := range blocks {
		pemData = append(pemData, pem.EncodeToMemory(block)...)
	}

	return parsePEM(pemData, "")
}

// the first private key is paired with all certificates preceding the next key,
// certificates without a key become trust anchors
func parsePEM(data []byte, _ string) (*KeyStore, error) {
	var (
		certBlocks []byte
		keyBlock   []byte
		loose      []*x509.Certificate
	)

	rest := data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}

		switch {
		case block.Type == "CERTIFICATE":
			certificate, err := x509.ParseCertificate(block.Bytes)
			if err != nil {
				return nil, err
			}
			certBlocks = append(certBlocks, pem.EncodeToMemory(block)...)
			loose = append(loose, certificate)
		case strings.HasSuffix(block.Type, "PRIVATE KEY"):
			if keyBlock == nil {
				keyBlock = pem.EncodeToMemory(block)
			}
		}
	}

	result := &KeyStore{}
	if keyBlock == nil {
		result.CAs = loose
		return result, nil
	}

	pair, err := tls.X509KeyPair(certBlocks, keyBlock)
	if err != nil {
		return nil, err
	}
	result.Certificates = append(result.Certificates, pair)
	// everything beyond the leaf is also trusted
	if len(loose) > 1 {
		result.CAs = append(result.CAs, loose[1:]...)
	}

	return result, nil
}
