package metrics

import (
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wsbridge/wsbridge-go/logging"
)

const endpointMetrics = "/metrics"

// ServeMetrics binds addr and serves the registered metrics asynchronously
func ServeMetrics(addr string) (*http.Server, net.Addr, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(endpointMetrics, promhttp.Handler())

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Log().Info("serving metrics on", listener.Addr(), endpointMetrics)
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Log().Error("metrics server failed:", err)
		}
	}()

	return server, listener.Addr(), nil
}
