package metrics

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsSuite))
}

type MetricsSuite struct {
	suite.Suite
}

func (s *MetricsSuite) Test_SourceCounter() {
	sut := NewSourceCounter("source-test")
	labels := prometheus.Labels{labelName: "source-test"}

	assert.Equal(s.T(), "source-test", sut.Name())
	assert.False(s.T(), sut.IsRunning())
	sut.Start()
	assert.True(s.T(), sut.IsRunning())

	sut.IncrementEventReceivedCount()
	sut.IncrementEventReceivedCount()
	sut.IncrementEventAcceptedCount()
	sut.SetOpenConnectionCount(1)

	assert.Equal(s.T(), int64(2), sut.EventReceivedCount())
	assert.Equal(s.T(), int64(1), sut.EventAcceptedCount())
	assert.Equal(s.T(), int64(1), sut.OpenConnectionCount())
	assert.Equal(s.T(), 2.0, testutil.ToFloat64(sourceEventsReceived.With(labels)))
	assert.Equal(s.T(), 1.0, testutil.ToFloat64(sourceEventsAccepted.With(labels)))
	assert.Equal(s.T(), 1.0, testutil.ToFloat64(sourceOpenConnections.With(labels)))

	sut.SetOpenConnectionCount(0)
	assert.Equal(s.T(), 0.0, testutil.ToFloat64(sourceOpenConnections.With(labels)))

	sut.Stop()
	assert.False(s.T(), sut.IsRunning())
}

func (s *MetricsSuite) Test_SinkCounter() {
	sut := NewSinkCounter("sink-test")
	labels := prometheus.Labels{labelName: "sink-test"}

	sut.Start()
	sut.IncrementConnectionCreatedCount()
	sut.IncrementEventDrainAttemptCount()
	sut.IncrementEventDrainAttemptCount()
	sut.IncrementEventDrainAttemptCount()
	sut.IncrementEventDrainSuccessCount()
	sut.IncrementConnectionClosedCount()
	sut.Stop()

	assert.Equal(s.T(), "sink-test", sut.Name())
	assert.Equal(s.T(), int64(3), sut.EventDrainAttemptCount())
	assert.Equal(s.T(), int64(1), sut.EventDrainSuccessCount())
	assert.Equal(s.T(), int64(1), sut.ConnectionCreatedCount())
	assert.Equal(s.T(), int64(1), sut.ConnectionClosedCount())
	assert.Equal(s.T(), 3.0, testutil.ToFloat64(sinkDrainAttempts.With(labels)))
	assert.Equal(s.T(), 1.0, testutil.ToFloat64(sinkDrainSuccesses.With(labels)))
	assert.Equal(s.T(), 1.0, testutil.ToFloat64(sinkConnectionsCreated.With(labels)))
	assert.Equal(s.T(), 1.0, testutil.ToFloat64(sinkConnectionsClosed.With(labels)))
}

func (s *MetricsSuite) Test_ServeMetrics() {
	NewSourceCounter("served").IncrementEventReceivedCount()

	server, addr, err := ServeMetrics("127.0.0.1:0")
	assert.Nil(s.T(), err)
	defer func() { _ = server.Shutdown(context.Background()) }()

	resp, err := http.Get("http://" + addr.String() + endpointMetrics)
	assert.Nil(s.T(), err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	assert.Nil(s.T(), err)
	assert.True(s.T(), strings.Contains(string(body), `wsbridge_source_events_received_total{name="served"} 1`))

	_, _, err = ServeMetrics(addr.String())
	assert.NotNil(s.T(), err)
}
