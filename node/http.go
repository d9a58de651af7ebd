package node

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/NethermindEth/starkevents/jsonrpc"
	"github.com/NethermindEth/starkevents/metrics"
	"github.com/NethermindEth/starkevents/utils"
	"github.com/rs/cors"
	"github.com/sourcegraph/conc"
)

type httpService struct {
	srv      *http.Server
	listener net.Listener
}

var _ service = (*httpService)(nil)

func (h *httpService) Run(ctx context.Context) error {
	errCh := make(chan error)
	defer close(errCh)

	var wg conc.WaitGroup
	defer wg.Wait()
	wg.Go(func() {
		if err := h.srv.Serve(h.listener); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	})

	select {
	case <-ctx.Done():
		return h.srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

func makeHTTPService(listener net.Listener, handler http.Handler) *httpService {
	return &httpService{
		srv: &http.Server{
			Addr:    listener.Addr().String(),
			Handler: handler,
			// ReadTimeout also sets ReadHeaderTimeout and IdleTimeout.
			ReadTimeout: 30 * time.Second,
		},
		listener: listener,
	}
}

func makeRPCOverHTTP(listener net.Listener, jsonrpcServer *jsonrpc.Server, reqListener jsonrpc.NewRequestListener,
	readiness *ReadinessHandlers, corsEnable bool, log utils.SimpleLogger,
) *httpService {
	var handler http.Handler = jsonrpc.NewHTTP(jsonrpcServer, log).WithListener(reqListener)
	if corsEnable {
		handler = cors.Default().Handler(handler)
	}
	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.HandleFunc("/live", readiness.HandleLive)
	mux.HandleFunc("/ready", readiness.HandleReady)
	return makeHTTPService(listener, mux)
}

func makeRPCOverWebsocket(listener net.Listener, jsonrpcServer *jsonrpc.Server, reqListener jsonrpc.NewRequestListener,
	log utils.SimpleLogger,
) *httpService {
	wsHandler := jsonrpc.NewWebsocket(jsonrpcServer, log).WithListener(reqListener)
	mux := http.NewServeMux()
	mux.Handle("/", wsHandler)
	return makeHTTPService(listener, mux)
}

func makeMetrics(listener net.Listener, registry *metrics.Registry) *httpService {
	mux := http.NewServeMux()
	mux.Handle("/metrics", registry.Handler())
	return makeHTTPService(listener, mux)
}

func makePPROF(listener net.Listener) *httpService {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return makeHTTPService(listener, mux)
}
