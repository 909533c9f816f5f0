package cert

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"io"
	"math/big"
	"net"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	keystore "github.com/pavlo-v-chernykh/keystore-go/v4"
)

const (
	certificateValidity = 365 * 24 * time.Hour
	defaultAlias        = "wsbridge"
)

// CreateCertificate creates a self signed ECDSA P-256 certificate valid for the
// given host names and IP addresses
func CreateCertificate(commonName string, hosts ...string) (tls.Certificate, error) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return tls.Certificate{}, err
	}

	serialNumber, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return tls.Certificate{}, err
	}

	template := x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			CommonName: commonName,
		},
		NotBefore:             time.Now().Add(-time.Minute),
		NotAfter:              time.Now().Add(certificateValidity),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	for _, host := range hosts {
		if ip := net.ParseIP(host); ip != nil {
			template.IPAddresses = append(template.IPAddresses, ip)
		} else {
			template.DNSNames = append(template.DNSNames, host)
		}
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &privateKey.PublicKey, privateKey)
	if err != nil {
		return tls.Certificate{}, err
	}

	leaf, err := x509.ParseCertificate(der)
	if err != nil {
		return tls.Certificate{}, err
	}

	return tls.Certificate{
		Certificate: [][]byte{der},
		PrivateKey:  privateKey,
		Leaf:        leaf,
	}, nil
}

// WriteKeyStore stores a certificate with its private key as JKS or PEM
func WriteKeyStore(w io.Writer, storeType string, certificate tls.Certificate, password string) error {
	keyDER, err := x509.MarshalPKCS8PrivateKey(certificate.PrivateKey)
	if err != nil {
		return pkgerrors.Wrap(err, "marshalling private key failed")
	}

	switch strings.ToUpper(storeType) {
	case "", TypeJKS:
		ks := keystore.New()
		entry := keystore.PrivateKeyEntry{
			CreationTime: time.Now(),
			PrivateKey:   keyDER,
		}
		for _, der := range certificate.Certificate {
			entry.CertificateChain = append(entry.CertificateChain, keystore.Certificate{
				Type:    "X509",
				Content: der,
			})
		}
		if err := ks.SetPrivateKeyEntry(defaultAlias, entry, []byte(password)); err != nil {
			return pkgerrors.Wrap(err, "adding keystore entry failed")
		}
		return pkgerrors.Wrap(ks.Store(w, []byte(password)), "writing keystore failed")

	case TypePEM:
		for _, der := range certificate.Certificate {
			if err := pem.Encode(w, &pem.Block{Type: "CERTIFICATE", Bytes: der}); err != nil {
				return pkgerrors.Wrap(err, "writing certificate failed")
			}
		}
		return pkgerrors.Wrap(pem.Encode(w, &pem.Block{Type: "PRIVATE KEY", Bytes: keyDER}), "writing private key failed")
	}

	return pkgerrors.Wrap(ErrUnsupportedKeyStoreType, storeType)
}

// AddTrustedCertificate appends a trusted certificate entry to a JKS keystore
func AddTrustedCertificate(r io.Reader, w io.Writer, password, alias string, certificate *x509.Certificate) error {
	ks := keystore.New()
	if r != nil {
		if err := ks.Load(r, []byte(password)); err != nil {
			return pkgerrors.Wrap(err, "reading keystore failed")
		}
	}

	entry := keystore.TrustedCertificateEntry{
		CreationTime: time.Now(),
		Certificate: keystore.Certificate{
			Type:    "X509",
			Content: certificate.Raw,
		},
	}
	if err := ks.SetTrustedCertificateEntry(alias, entry); err != nil {
		return pkgerrors.Wrap(err, "adding trusted entry failed")
	}

	return pkgerrors.Wrap(ks.Store(w, []byte(password)), "writing keystore failed")
}
