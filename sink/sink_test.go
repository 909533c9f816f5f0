package sink

import (
	"bytes"
	"errors"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/wsbridge/wsbridge-go/cert"
	"github.com/wsbridge/wsbridge-go/channel"
	"github.com/wsbridge/wsbridge-go/config"
	"github.com/wsbridge/wsbridge-go/metrics"
	"github.com/wsbridge/wsbridge-go/mocks"
	"github.com/wsbridge/wsbridge-go/model"
	"github.com/wsbridge/wsbridge-go/source"
	"github.com/wsbridge/wsbridge-go/ws"
	"go.uber.org/mock/gomock"
)

const waitTimeout = 5 * time.Second

func TestSinkSuite(t *testing.T) {
	suite.Run(t, new(SinkSuite))
}

type SinkSuite struct {
	suite.Suite

	channel *channel.MemoryChannel
	counter *metrics.SinkCounter
	sut     *Sink
}

func (s *SinkSuite) BeforeTest(suiteName, testName string) {
	s.channel = channel.NewMemoryChannel(10, 50*time.Millisecond)
	s.counter = metrics.NewSinkCounter(testName)
	s.sut = NewSink(testName, s.counter)
	s.sut.SetChannel(s.channel)
}

func (s *SinkSuite) AfterTest(suiteName, testName string) {
	s.sut.Stop()
}

func localProps(extra ...string) map[string]string {
	props := map[string]string{
		config.KeyHost: "127.0.0.1",
		config.KeyPort: "0",
	}
	for i := 0; i+1 < len(extra); i += 2 {
		props[extra[i]] = extra[i+1]
	}
	return props
}

type peer struct {
	client   *ws.Client
	messages chan string
}

func (s *SinkSuite) connect(scheme string) *peer {
	p := &peer{messages: make(chan string, 10)}
	opened := make(chan struct{})

	builder := ws.NewClientBuilder().
		SetEndpoint(&url.URL{Scheme: scheme, Host: s.sut.Addr().String()}).
		OnOpen(func(*http.Response) { close(opened) }).
		OnMessage(func(text string) { p.messages <- text })
	if scheme == "wss" {
		builder.SetTLSConfig(cert.DefaultTLSConfig(model.TrustPolicyTrustAll))
	}

	var err error
	p.client, err = builder.Connect()
	assert.Nil(s.T(), err)

	select {
	case <-opened:
	case <-time.After(waitTimeout):
		s.T().Fatal("peer did not connect")
	}
	return p
}

func (s *SinkSuite) receive(p *peer) string {
	select {
	case text := <-p.messages:
		return text
	case <-time.After(waitTimeout):
		s.T().Fatal("peer did not receive a message")
	}
	return ""
}

func (s *SinkSuite) put(body string) {
	assert.Nil(s.T(), channel.NewProcessor(s.channel).ProcessEvent(model.NewEvent([]byte(body))))
}

func (s *SinkSuite) Test_BackoffBeforeStart() {
	s.put("queued")

	status, err := s.sut.Process()
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), model.StatusBackoff, status)
	assert.Equal(s.T(), int64(1), s.counter.EventDrainAttemptCount())
	assert.Equal(s.T(), int64(0), s.counter.EventDrainSuccessCount())
	// the channel is untouched
	assert.Equal(s.T(), 1, s.channel.Len())
}

func (s *SinkSuite) Test_BackoffLeavesChannelUntouched() {
	ctrl := gomock.NewController(s.T())
	counter := mocks.NewMockSinkCounter(ctrl)
	counter.EXPECT().IncrementEventDrainAttemptCount().Times(1)

	sut := NewSink("untouched", counter)
	sut.SetChannel(mocks.NewMockChannel(ctrl))

	status, err := sut.Process()
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), model.StatusBackoff, status)
}

func (s *SinkSuite) Test_Broadcast() {
	assert.Nil(s.T(), s.sut.Configure(localProps()))
	assert.Nil(s.T(), s.sut.Start())
	assert.Equal(s.T(), model.SinkStateListening, s.sut.State())
	assert.Equal(s.T(), int64(1), s.counter.ConnectionCreatedCount())

	first := s.connect("ws")
	second := s.connect("ws")
	assert.Eventually(s.T(), func() bool { return s.sut.PeerCount() == 2 }, waitTimeout, 10*time.Millisecond)

	s.put("hello")
	status, err := s.sut.Process()
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), model.StatusReady, status)

	assert.Equal(s.T(), "hello", s.receive(first))
	assert.Equal(s.T(), "hello", s.receive(second))
	assert.Equal(s.T(), int64(1), s.counter.EventDrainAttemptCount())
	assert.Equal(s.T(), int64(1), s.counter.EventDrainSuccessCount())
	assert.Equal(s.T(), 0, s.channel.Len())

	first.client.Close()
	second.client.Close()
}

func (s *SinkSuite) Test_BroadcastOrder() {
	assert.Nil(s.T(), s.sut.Configure(localProps()))
	assert.Nil(s.T(), s.sut.Start())
	p := s.connect("ws")
	assert.Eventually(s.T(), func() bool { return s.sut.PeerCount() == 1 }, waitTimeout, 10*time.Millisecond)

	for i := 0; i < 5; i++ {
		s.put(strconv.Itoa(i))
	}
	for i := 0; i < 5; i++ {
		status, err := s.sut.Process()
		assert.Nil(s.T(), err)
		assert.Equal(s.T(), model.StatusReady, status)
	}
	for i := 0; i < 5; i++ {
		assert.Equal(s.T(), strconv.Itoa(i), s.receive(p))
	}
	p.client.Close()
}

func (s *SinkSuite) Test_EmptyChannel() {
	assert.Nil(s.T(), s.sut.Configure(localProps()))
	assert.Nil(s.T(), s.sut.Start())

	status, err := s.sut.Process()
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), model.StatusReady, status)
	assert.Equal(s.T(), int64(1), s.counter.EventDrainAttemptCount())
	assert.Equal(s.T(), int64(0), s.counter.EventDrainSuccessCount())
}

func (s *SinkSuite) Test_NoPeers() {
	assert.Nil(s.T(), s.sut.Configure(localProps()))
	assert.Nil(s.T(), s.sut.Start())
	s.put("nobody listens")

	status, err := s.sut.Process()
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), model.StatusReady, status)
	assert.Equal(s.T(), int64(1), s.counter.EventDrainSuccessCount())
	assert.Equal(s.T(), 0, s.channel.Len())
}

func (s *SinkSuite) Test_TakeError() {
	ctrl := gomock.NewController(s.T())
	ch := mocks.NewMockChannel(ctrl)
	tx := mocks.NewMockTransaction(ctrl)

	ch.EXPECT().Transaction().Return(tx)
	gomock.InOrder(
		tx.EXPECT().Begin(),
		tx.EXPECT().Take().Return(nil, channel.ErrChannelClosed),
		tx.EXPECT().Rollback().Return(nil),
		tx.EXPECT().Close(),
	)

	assert.Nil(s.T(), s.sut.Configure(localProps()))
	assert.Nil(s.T(), s.sut.Start())
	s.sut.SetChannel(ch)

	status, err := s.sut.Process()
	assert.True(s.T(), errors.Is(err, channel.ErrChannelClosed))
	assert.Equal(s.T(), model.StatusBackoff, status)
	assert.Equal(s.T(), int64(0), s.counter.EventDrainSuccessCount())
}

func (s *SinkSuite) Test_CommitError() {
	ctrl := gomock.NewController(s.T())
	ch := mocks.NewMockChannel(ctrl)
	tx := mocks.NewMockTransaction(ctrl)
	failure := errors.New("commit rejected")

	ch.EXPECT().Transaction().Return(tx)
	gomock.InOrder(
		tx.EXPECT().Begin(),
		tx.EXPECT().Take().Return(model.NewEvent([]byte("x")), nil),
		tx.EXPECT().Commit().Return(failure),
		tx.EXPECT().Rollback().Return(nil),
		tx.EXPECT().Close(),
	)

	assert.Nil(s.T(), s.sut.Configure(localProps()))
	assert.Nil(s.T(), s.sut.Start())
	s.sut.SetChannel(ch)

	status, err := s.sut.Process()
	assert.True(s.T(), errors.Is(err, failure))
	assert.Equal(s.T(), model.StatusBackoff, status)
}

func (s *SinkSuite) Test_NoChannel() {
	sut := NewSink("no-channel", nil)
	assert.NotNil(s.T(), sut.Counter())
	assert.Nil(s.T(), sut.Configure(localProps()))
	assert.Nil(s.T(), sut.Start())
	defer sut.Stop()

	status, err := sut.Process()
	assert.True(s.T(), errors.Is(err, ErrNoChannel))
	assert.Equal(s.T(), model.StatusBackoff, status)
}

func (s *SinkSuite) Test_NotConfigured() {
	assert.True(s.T(), errors.Is(s.sut.Start(), ErrNotConfigured))
	assert.Equal(s.T(), model.SinkStateIdle, s.sut.State())
	assert.Nil(s.T(), s.sut.Addr())
}

func (s *SinkSuite) Test_BindFailure() {
	assert.Nil(s.T(), s.sut.Configure(localProps()))
	assert.Nil(s.T(), s.sut.Start())

	_, port, err := net.SplitHostPort(s.sut.Addr().String())
	assert.Nil(s.T(), err)
	other := NewSink("other", nil)
	assert.Nil(s.T(), other.Configure(localProps(config.KeyPort, port)))
	assert.NotNil(s.T(), other.Start())
	assert.Equal(s.T(), model.SinkStateIdle, other.State())
}

func (s *SinkSuite) Test_StopIdempotent() {
	assert.Nil(s.T(), s.sut.Configure(localProps()))
	assert.Nil(s.T(), s.sut.Start())
	// starting twice keeps the server
	assert.Nil(s.T(), s.sut.Start())
	assert.Equal(s.T(), int64(1), s.counter.ConnectionCreatedCount())

	p := s.connect("ws")
	s.sut.Stop()
	s.sut.Stop()
	assert.Equal(s.T(), model.SinkStateStopped, s.sut.State())
	assert.Equal(s.T(), int64(1), s.counter.ConnectionClosedCount())
	assert.False(s.T(), s.counter.IsRunning())
	assert.Eventually(s.T(), p.client.IsClosed, waitTimeout, 10*time.Millisecond)

	status, _ := s.sut.Process()
	assert.Equal(s.T(), model.StatusBackoff, status)
}

func (s *SinkSuite) writeKeyStore() string {
	certificate, err := cert.CreateCertificate("wsbridge-test", "127.0.0.1")
	assert.Nil(s.T(), err)

	var buf bytes.Buffer
	assert.Nil(s.T(), cert.WriteKeyStore(&buf, cert.TypeJKS, certificate, "changeit"))
	path := filepath.Join(s.T().TempDir(), "keystore.jks")
	assert.Nil(s.T(), os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func (s *SinkSuite) Test_TrustAllTLS() {
	assert.Nil(s.T(), s.sut.Configure(localProps(
		config.KeySSLEnabled, "true",
		config.KeyKeyStoreType, "JKS",
		config.KeyKeyStorePath, s.writeKeyStore(),
		config.KeyKeyStorePass, "changeit",
		config.KeyTrustAllCerts, "true",
	)))
	assert.Nil(s.T(), s.sut.Start())

	// a source trusting all certificates connects, the server echoes its init message
	received := channel.NewMemoryChannel(10, 100*time.Millisecond)
	src := source.NewSource("tls-source", nil)
	src.SetChannelProcessor(channel.NewProcessor(received))
	assert.Nil(s.T(), src.Configure(map[string]string{
		config.KeyEndpoint:      "wss://" + s.sut.Addr().String(),
		config.KeySSLEnabled:    "true",
		config.KeyTrustAllCerts: "true",
		config.KeyInitMessage:   "over tls",
	}))
	assert.Nil(s.T(), src.Start())
	defer src.Stop()

	assert.Eventually(s.T(), func() bool { return received.Len() == 1 }, waitTimeout, 10*time.Millisecond)

	// and receives broadcasts
	s.put("broadcast")
	status, err := s.sut.Process()
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), model.StatusReady, status)
	assert.Eventually(s.T(), func() bool { return received.Len() == 2 }, waitTimeout, 10*time.Millisecond)
}

func (s *SinkSuite) Test_TLSFallback() {
	// the keystore is missing, the server runs without tls
	assert.Nil(s.T(), s.sut.Configure(localProps(
		config.KeySSLEnabled, "true",
		config.KeyKeyStorePath, filepath.Join(s.T().TempDir(), "missing.jks"),
		config.KeyRequestLogging, "true",
	)))
	assert.Nil(s.T(), s.sut.Start())

	p := s.connect("ws")
	assert.True(s.T(), p.client.IsOpen())
	p.client.Close()
}
