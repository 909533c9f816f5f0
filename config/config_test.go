package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/onsi/gomega"
	"github.com/wsbridge/wsbridge-go/model"
	ordered "gitlab.com/c0b/go-ordered-json"
)

const initMessage = `{"type": "subscribe", "product_ids": ["BTC-USD"], "channels": ["level2"]}`

func sourceProps() Properties {
	return Properties{
		"endpoint":             "ws://localhost:8080",
		"retryDelay":           "5",
		"initMessage":          initMessage,
		"sslEnabled":           "false",
		"trustAllCerts":        "true",
		"cookies":              "cookie1, cookie2",
		"cookie.cookie1.name":  "some-cookie-name",
		"cookie.cookie1.value": "Data for cookie1 goes here",
		"cookie.cookie2.name":  "another-cookie-name",
		"cookie.cookie2.value": "Data for cookie2 goes here",
	}
}

func pairs(m *ordered.OrderedMap) [][2]string {
	var result [][2]string
	iter := m.EntriesIter()
	for {
		pair, ok := iter()
		if !ok {
			break
		}
		result = append(result, [2]string{pair.Key, pair.Value.(string)})
	}
	return result
}

func TestSourceConfig(t *testing.T) {
	g := gomega.NewGomegaWithT(t)

	uut := NewSourceConfig(sourceProps())

	endpoint, err := uut.EndpointURL()
	g.Expect(err).To(gomega.BeNil())
	g.Expect(endpoint.String()).To(gomega.Equal("ws://localhost:8080"))
	g.Expect(uut.HasInitMessage()).To(gomega.BeTrue())
	g.Expect(uut.InitMessage()).To(gomega.Equal(initMessage))
	g.Expect(uut.RetryDelayS()).To(gomega.Equal(5))
	g.Expect(uut.RetryDelay()).To(gomega.Equal(5 * time.Second))
	g.Expect(uut.SSLEnabled()).To(gomega.BeFalse())
	g.Expect(uut.TrustAllCerts()).To(gomega.BeTrue())
	g.Expect(uut.TrustPolicy()).To(gomega.Equal(model.TrustPolicyTrustAll))
	g.Expect(uut.KeyStore().Type).To(gomega.BeEmpty())
	g.Expect(uut.KeyStore().Path).To(gomega.BeEmpty())
	g.Expect(uut.KeyStore().Password).To(gomega.BeEmpty())
	g.Expect(pairs(uut.Cookies())).To(gomega.Equal([][2]string{
		{"some-cookie-name", "Data for cookie1 goes here"},
		{"another-cookie-name", "Data for cookie2 goes here"},
	}))
}

func TestSourceConfigDefaults(t *testing.T) {
	g := gomega.NewGomegaWithT(t)

	uut := NewSourceConfig(Properties{})

	_, err := uut.EndpointURL()
	g.Expect(errors.Is(err, ErrMissingEndpoint)).To(gomega.BeTrue())
	g.Expect(uut.RawEndpoint()).To(gomega.BeEmpty())
	g.Expect(uut.HasInitMessage()).To(gomega.BeFalse())
	g.Expect(uut.RetryDelayS()).To(gomega.Equal(DefaultRetryDelay))
	g.Expect(uut.SSLEnabled()).To(gomega.BeFalse())
	g.Expect(uut.TrustPolicy()).To(gomega.Equal(model.TrustPolicyDefault))
	g.Expect(pairs(uut.Cookies())).To(gomega.BeEmpty())
}

func TestSourceConfigEmptyInitMessage(t *testing.T) {
	g := gomega.NewGomegaWithT(t)

	// an empty value is still a configured message
	uut := NewSourceConfig(Properties{"initMessage": ""})
	g.Expect(uut.HasInitMessage()).To(gomega.BeTrue())
	g.Expect(uut.InitMessage()).To(gomega.BeEmpty())
}

func TestSourceConfigInvalidEndpoint(t *testing.T) {
	g := gomega.NewGomegaWithT(t)

	for _, endpoint := range []string{"http://example.com", "ws://", "://broken", "example.com"} {
		uut := NewSourceConfig(Properties{"endpoint": endpoint})
		_, err := uut.EndpointURL()
		g.Expect(errors.Is(err, ErrInvalidEndpoint)).To(gomega.BeTrue(), endpoint)
		g.Expect(uut.RawEndpoint()).To(gomega.Equal(endpoint))
	}
}

func TestSourceConfigCoercion(t *testing.T) {
	g := gomega.NewGomegaWithT(t)

	uut := NewSourceConfig(Properties{
		"retryDelay":    "soon",
		"sslEnabled":    "TRUE",
		"trustAllCerts": "maybe",
	})
	g.Expect(uut.RetryDelayS()).To(gomega.Equal(DefaultRetryDelay))
	g.Expect(uut.SSLEnabled()).To(gomega.BeTrue())
	g.Expect(uut.TrustAllCerts()).To(gomega.BeFalse())
}

func TestSourceConfigRetryDelayFloor(t *testing.T) {
	g := gomega.NewGomegaWithT(t)

	for _, value := range []string{"0", "-5"} {
		uut := NewSourceConfig(Properties{"retryDelay": value})
		g.Expect(uut.RetryDelayS()).To(gomega.Equal(MinRetryDelay))
		g.Expect(uut.RetryDelay()).To(gomega.Equal(time.Second))
	}

	uut := NewSourceConfig(Properties{"retryDelay": "1"})
	g.Expect(uut.RetryDelay()).To(gomega.Equal(time.Second))
}

func TestCookies(t *testing.T) {
	g := gomega.NewGomegaWithT(t)

	uut := NewSourceConfig(Properties{
		"cookies":         "c1,c2 ,  c3,missing,c4",
		"cookie.c1.name":  "a",
		"cookie.c1.value": "1",
		"cookie.c2.name":  "b",
		"cookie.c2.value": "2",
		// no value, skipped
		"cookie.c3.name": "c",
		// same name as c1, last write wins
		"cookie.c4.name":  "a",
		"cookie.c4.value": "4",
	})
	g.Expect(pairs(uut.Cookies())).To(gomega.Equal([][2]string{{"a", "4"}, {"b", "2"}}))

	// the returned mapping is a copy
	uut.Cookies().Set("z", "26")
	g.Expect(uut.Cookies().Has("z")).To(gomega.BeFalse())

	empty := NewSourceConfig(Properties{"cookies": ""})
	g.Expect(pairs(empty.Cookies())).To(gomega.BeEmpty())
}

func TestSinkConfig(t *testing.T) {
	g := gomega.NewGomegaWithT(t)

	uut := NewSinkConfig(Properties{})
	g.Expect(uut.Host()).To(gomega.Equal("0.0.0.0"))
	g.Expect(uut.Port()).To(gomega.Equal(8080))
	g.Expect(uut.Address()).To(gomega.Equal("0.0.0.0:8080"))
	g.Expect(uut.SSLEnabled()).To(gomega.BeFalse())
	g.Expect(uut.RequestLogging()).To(gomega.BeFalse())

	uut = NewSinkConfig(Properties{
		"host":           "127.0.0.1",
		"port":           "50009",
		"sslEnabled":     "true",
		"keyStoreType":   "JKS",
		"keyStorePath":   "keystore.jks",
		"keyStorePass":   "changeit",
		"trustAllCerts":  "true",
		"requestLogging": "true",
	})
	g.Expect(uut.Address()).To(gomega.Equal("127.0.0.1:50009"))
	g.Expect(uut.RequestLogging()).To(gomega.BeTrue())
	g.Expect(uut.SSLEnabled()).To(gomega.BeTrue())
	g.Expect(uut.KeyStore().Type).To(gomega.Equal("JKS"))
	g.Expect(uut.KeyStore().Path).To(gomega.Equal("keystore.jks"))
	g.Expect(uut.KeyStore().Password).To(gomega.Equal("changeit"))
	g.Expect(uut.TrustPolicy()).To(gomega.Equal(model.TrustPolicyTrustAll))
}

func TestSubProperties(t *testing.T) {
	g := gomega.NewGomegaWithT(t)

	props := Properties{"source.endpoint": "ws://a", "sink.port": "1", "other": "x"}
	g.Expect(ForRole(props, RoleSource)).To(gomega.Equal(Properties{"endpoint": "ws://a"}))
	g.Expect(ForRole(props, RoleSink)).To(gomega.Equal(Properties{"port": "1"}))
}

func TestFromYAMLFile(t *testing.T) {
	g := gomega.NewGomegaWithT(t)

	path := filepath.Join(t.TempDir(), "wsbridge.yaml")
	data := `
source:
  endpoint: wss://example.com/feed
  retryDelay: 5
  sslEnabled: true
  cookies: c1
  cookie.c1.name: session
  cookie.c1.value: abc
sink:
  host: 127.0.0.1
  port: 9000
`
	g.Expect(os.WriteFile(path, []byte(data), 0o600)).To(gomega.Succeed())

	uut, err := FromYAMLFile(path)
	g.Expect(err).To(gomega.BeNil())
	g.Expect(uut).To(gomega.HaveLen(2))
	g.Expect(uut[RoleSource]["retryDelay"]).To(gomega.Equal("5"))
	g.Expect(uut[RoleSource]["sslEnabled"]).To(gomega.Equal("true"))
	g.Expect(uut[RoleSink]["port"]).To(gomega.Equal("9000"))

	source := NewSourceConfig(uut[RoleSource])
	g.Expect(source.RetryDelayS()).To(gomega.Equal(5))
	g.Expect(source.Cookies().Get("session")).To(gomega.Equal("abc"))

	_, err = FromYAMLFile(filepath.Join(t.TempDir(), "missing.yaml"))
	g.Expect(err).NotTo(gomega.BeNil())

	nested := filepath.Join(t.TempDir(), "nested.yaml")
	g.Expect(os.WriteFile(nested, []byte("source:\n  endpoint:\n    host: x\n"), 0o600)).To(gomega.Succeed())
	_, err = FromYAMLFile(nested)
	g.Expect(err).NotTo(gomega.BeNil())
}

func TestFromPropertiesFile(t *testing.T) {
	g := gomega.NewGomegaWithT(t)

	path := filepath.Join(t.TempDir(), "source.properties")
	data := "endpoint=ws://127.0.0.1:50009\ncookies=c1\ncookie.c1.name=a\ncookie.c1.value=1\n"
	g.Expect(os.WriteFile(path, []byte(data), 0o600)).To(gomega.Succeed())

	uut, err := FromPropertiesFile(path)
	g.Expect(err).To(gomega.BeNil())
	g.Expect(uut["endpoint"]).To(gomega.Equal("ws://127.0.0.1:50009"))
	g.Expect(uut["cookie.c1.name"]).To(gomega.Equal("a"))
}

func TestMerge(t *testing.T) {
	g := gomega.NewGomegaWithT(t)

	overrides, err := ParseAssignments([]string{"port=9000", "initMessage=a=b"})
	g.Expect(err).To(gomega.BeNil())
	g.Expect(overrides["initMessage"]).To(gomega.Equal("a=b"))

	base := Properties{"port": "8080", "host": "127.0.0.1"}
	merged, err := Merge(base, overrides)
	g.Expect(err).To(gomega.BeNil())
	g.Expect(merged).To(gomega.Equal(Properties{"port": "9000", "host": "127.0.0.1", "initMessage": "a=b"}))
	// dst is left untouched
	g.Expect(base["port"]).To(gomega.Equal("8080"))

	_, err = ParseAssignments([]string{"novalue"})
	g.Expect(err).NotTo(gomega.BeNil())
	_, err = ParseAssignments([]string{"=value"})
	g.Expect(err).NotTo(gomega.BeNil())
}
