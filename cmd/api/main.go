package main

import (
	"context"
	"log"
	"os"

	"github.com/easypmnt/sui-swap-api/aggregator"
	"github.com/easypmnt/sui-swap-api/dexconfig"
	"github.com/easypmnt/sui-swap-api/events"
	"github.com/easypmnt/sui-swap-api/sevenk"
	"github.com/easypmnt/sui-swap-api/server"
	"github.com/easypmnt/sui-swap-api/sui"
	"github.com/easypmnt/sui-swap-api/websocketrpc"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/sirupsen/logrus"
)

func main() {
	// Setup go-kit logger
	var logger kitlog.Logger
	{
		logger = kitlog.NewJSONLogger(kitlog.NewSyncWriter(os.Stdout))
		logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
		logger = kitlog.With(logger, "caller", kitlog.DefaultCaller)
		logger = kitlog.With(logger, "build", buildTagRuntime)
		logger = kitlog.With(logger, "app", appName)

		log.SetOutput(kitlog.NewStdlibAdapter(logger))
	}

	// Global app context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init 7k aggregator client
	market := sevenk.NewClient(
		sevenk.WithAPIURL(sevenkAPIURL),
		sevenk.WithPricesURL(sevenkPricesURL),
		sevenk.WithStatsURL(sevenkStatsURL),
		sevenk.WithTimeout(httpClientTimeout),
	)

	// Init Sui RPC client
	chain := sui.NewClient(
		sui.WithRPCEndpoint(suiRPCURL),
		sui.WithTimeout(httpClientTimeout),
	)

	// Exchange configuration, refreshed every configTTL
	configs := dexconfig.NewCache(market,
		dexconfig.WithTTL(configTTL),
		dexconfig.WithLogger(kitlog.With(logger, "component", "dexconfig")),
	)

	// Event bus
	bus := events.NewBus(events.WithLogger(kitlog.With(logger, "component", "events")))
	defer bus.Close()

	bus.On(ctx, events.SwapBuildFailed, func(payload ...interface{}) error {
		if len(payload) > 0 {
			level.Warn(logger).Log("msg", "swap build failed", "event", payload[0])
		}
		return nil
	})
	bus.On(ctx, events.SwapSettled, func(payload ...interface{}) error {
		if len(payload) > 0 {
			level.Info(logger).Log("msg", "swap settled", "event", payload[0])
		}
		return nil
	})

	// Swap transaction builder
	svc := aggregator.NewServiceEvents(
		aggregator.NewService(chain, configs,
			aggregator.WithLogger(kitlog.With(logger, "component", "aggregator")),
		),
		bus.Fire,
	)

	// Settlement watcher
	if suiWSURL != "" {
		wsLog := logrus.New()
		wsLog.SetFormatter(&logrus.JSONFormatter{})

		ws, err := websocketrpc.NewClient(ctx, suiWSURL, websocketrpc.WithLogger(wsLog))
		if err != nil {
			logger.Log("error", err, "msg", "failed to connect to sui websocket")
			os.Exit(1)
		}
		defer ws.Close()

		if _, err := ws.WatchSettlements(ctx, aggregator.DefaultSettlement().Package, bus.Fire); err != nil {
			logger.Log("error", err, "msg", "failed to subscribe to settlement events")
			os.Exit(1)
		}
	}

	// Init HTTP router
	r := initRouter(logger)

	// Mount HTTP endpoints
	metrics := server.NewMetrics(metricsNamespace)
	r.Mount("/v1", server.MakeHTTPHandler(
		server.MakeEndpoints(svc, market, configs, server.Config{
			DefaultSlippage: defaultSlippage,
			Commission: aggregator.Commission{
				Partner:       commissionPartner,
				CommissionBps: uint16(commissionBps),
			},
			Metrics: metrics,
		}),
		logger,
		metrics.Handler(),
	))

	// Run HTTP server
	runServer(ctx, httpPort, r, logger)
}
