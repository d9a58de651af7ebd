package node

import (
	"context"
	"fmt"
	"net"
	"reflect"
	"runtime"
	"strconv"

	"github.com/NethermindEth/starkevents/blockchain"
	"github.com/NethermindEth/starkevents/db"
	"github.com/NethermindEth/starkevents/db/pebble"
	"github.com/NethermindEth/starkevents/jsonrpc"
	"github.com/NethermindEth/starkevents/metrics"
	"github.com/NethermindEth/starkevents/rpc"
	"github.com/NethermindEth/starkevents/utils"
	"github.com/NethermindEth/starkevents/validator"
	"github.com/sourcegraph/conc"
)

// Config is the top-level starkevents configuration.
type Config struct {
	LogLevel utils.LogLevel `mapstructure:"log-level" validate:"oneof=debug info warn error"`
	Colour   bool           `mapstructure:"colour"`

	DatabasePath string `mapstructure:"db-path" validate:"required"`
	DBCacheSize  uint   `mapstructure:"db-cache-size"`
	DBMaxHandles int    `mapstructure:"db-max-handles"`

	HTTP     bool   `mapstructure:"http"`
	HTTPHost string `mapstructure:"http-host" validate:"required_if=HTTP true"`
	HTTPPort uint16 `mapstructure:"http-port"`

	Websocket     bool   `mapstructure:"ws"`
	WebsocketHost string `mapstructure:"ws-host" validate:"required_if=Websocket true"`
	WebsocketPort uint16 `mapstructure:"ws-port"`

	Metrics     bool   `mapstructure:"metrics"`
	MetricsHost string `mapstructure:"metrics-host" validate:"required_if=Metrics true"`
	MetricsPort uint16 `mapstructure:"metrics-port"`

	Pprof     bool   `mapstructure:"pprof"`
	PprofHost string `mapstructure:"pprof-host" validate:"required_if=Pprof true"`
	PprofPort uint16 `mapstructure:"pprof-port"`

	RPCMaxScannedBlocks uint `mapstructure:"rpc-max-scanned-blocks"`
	RPCCorsEnable       bool `mapstructure:"rpc-cors-enable"`
	RPCMaxGoroutines    uint `mapstructure:"rpc-max-goroutines"`
}

type service interface {
	Run(ctx context.Context) error
}

type Node struct {
	cfg        *Config
	db         db.DB
	blockchain *blockchain.Blockchain
	metrics    *metrics.Registry

	services []service
	log      utils.SimpleLogger

	version string
}

// New validates the config, opens the database and binds every enabled service.
func New(cfg *Config, version string) (*Node, error) {
	if err := validator.Validator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log, err := utils.NewZapLogger(cfg.LogLevel, cfg.Colour)
	if err != nil {
		return nil, err
	}
	dbLog, err := utils.NewZapLogger(utils.ERROR, cfg.Colour)
	if err != nil {
		return nil, fmt.Errorf("create DB logger: %w", err)
	}

	registry := metrics.New(cfg.Metrics)
	database, err := pebble.New(cfg.DatabasePath,
		pebble.WithLogger(dbLog),
		pebble.WithCacheSize(cfg.DBCacheSize),
		pebble.WithMaxOpenFiles(cfg.DBMaxHandles),
	)
	if err != nil {
		return nil, fmt.Errorf("open DB: %w", err)
	}
	if registry.Enabled() {
		database = database.WithListener(makeDBMetrics(registry))
		makePebbleMetrics(registry, database)
	}

	chain := blockchain.New(database, log)
	if registry.Enabled() {
		chain.WithListener(makeBlockchainMetrics(registry, chain))
	}
	rpcHandler := rpc.New(chain, version, log).WithFilterLimit(cfg.RPCMaxScannedBlocks)

	maxGoroutines := int(cfg.RPCMaxGoroutines)
	if maxGoroutines == 0 {
		// to improve RPC throughput we double GOMAXPROCS
		maxGoroutines = 2 * runtime.GOMAXPROCS(0)
	}
	jsonrpcServer := jsonrpc.NewServer(maxGoroutines, log).WithValidator(validator.Validator())
	if err = jsonrpcServer.RegisterMethods(rpcHandler.Methods()...); err != nil {
		return nil, utils.RunAndWrapOnError(database.Close, err)
	}

	n := &Node{
		cfg:        cfg,
		log:        log,
		version:    version,
		db:         database,
		blockchain: chain,
		metrics:    registry,
	}

	if err = n.bindServices(jsonrpcServer, registry); err != nil {
		return nil, utils.RunAndWrapOnError(database.Close, err)
	}
	return n, nil
}

func (n *Node) bindServices(jsonrpcServer *jsonrpc.Server, registry *metrics.Registry) error {
	var (
		httpListener jsonrpc.NewRequestListener = &jsonrpc.SelectiveListener{}
		wsListener   jsonrpc.NewRequestListener = &jsonrpc.SelectiveListener{}
	)
	if registry.Enabled() {
		jsonrpcServer.WithListener(makeRPCMetrics(registry))
		httpListener = makeHTTPMetrics(registry)
		wsListener = makeWSMetrics(registry)
		makeBuildMetrics(registry, n.version)
	}

	readiness := NewReadinessHandlers(n.blockchain)
	binds := []struct {
		enabled bool
		host    string
		port    uint16
		make    func(net.Listener) *httpService
	}{
		{n.cfg.HTTP, n.cfg.HTTPHost, n.cfg.HTTPPort, func(l net.Listener) *httpService {
			return makeRPCOverHTTP(l, jsonrpcServer, httpListener, readiness, n.cfg.RPCCorsEnable, n.log)
		}},
		{n.cfg.Websocket, n.cfg.WebsocketHost, n.cfg.WebsocketPort, func(l net.Listener) *httpService {
			return makeRPCOverWebsocket(l, jsonrpcServer, wsListener, n.log)
		}},
		{n.cfg.Metrics, n.cfg.MetricsHost, n.cfg.MetricsPort, func(l net.Listener) *httpService {
			return makeMetrics(l, registry)
		}},
		{n.cfg.Pprof, n.cfg.PprofHost, n.cfg.PprofPort, makePPROF},
	}

	for _, bind := range binds {
		if !bind.enabled {
			continue
		}
		listener, err := net.Listen("tcp", net.JoinHostPort(bind.host, strconv.Itoa(int(bind.port))))
		if err != nil {
			n.closeListeners()
			return fmt.Errorf("listen on %s:%d: %w", bind.host, bind.port, err)
		}
		n.log.Infow("Listening", "addr", listener.Addr().String())
		n.services = append(n.services, bind.make(listener))
	}
	return nil
}

func (n *Node) closeListeners() {
	for _, s := range n.services {
		if h, ok := s.(*httpService); ok {
			if err := h.listener.Close(); err != nil {
				n.log.Warnw("Failed to close listener", "err", err)
			}
		}
	}
	n.services = nil
}

// Run starts every service and blocks until ctx is cancelled or one of
// them fails. The database is closed once all services have returned.
func (n *Node) Run(ctx context.Context) {
	defer func() {
		if closeErr := n.db.Close(); closeErr != nil {
			n.log.Errorw("Error while closing the DB", "err", closeErr)
		}
	}()

	if height, err := n.blockchain.Height(); err == nil {
		n.log.Infow("Serving events", "height", height)
	} else {
		n.log.Warnw("Ledger is empty, import blocks to serve events")
	}

	ctx, cancel := context.WithCancel(ctx)
	wg := conc.NewWaitGroup()
	for _, s := range n.services {
		wg.Go(func() {
			if err := s.Run(ctx); err != nil {
				n.log.Errorw("Service error", "name", reflect.TypeOf(s), "err", err)
				cancel()
			}
		})
	}
	defer wg.Wait()

	<-ctx.Done()
	cancel()
	n.log.Infow("Shutting down starkevents...")
}

func (n *Node) Config() Config {
	return *n.cfg
}

// Addrs lists the bound address of every running service in bind order.
func (n *Node) Addrs() []string {
	addrs := make([]string, 0, len(n.services))
	for _, s := range n.services {
		if h, ok := s.(*httpService); ok {
			addrs = append(addrs, h.listener.Addr().String())
		}
	}
	return addrs
}
