package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/go-env"
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically
)

var (
	appName         = env.GetString("APP_NAME", "sui-swap-api")
	buildTagRuntime = env.GetString("COMMIT_HASH", "undefined")

	httpPort           = env.GetInt("HTTP_PORT", 8080)
	httpRequestTimeout = env.GetDuration("HTTP_REQUEST_TIMEOUT", 30*time.Second)
	corsAllowedOrigins = strings.Split(env.GetString("CORS_ALLOWED_ORIGINS", "*"), ",")
	corsAllowedMethods = strings.Split(env.GetString("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS"), ",")
	corsAllowedHeaders = strings.Split(env.GetString("CORS_ALLOWED_HEADERS", "Accept,Content-Type,X-Request-ID"), ",")
	corsMaxAge         = env.GetInt("CORS_MAX_AGE", 300)

	suiRPCURL = env.GetString("SUI_RPC_URL", "https://fullnode.mainnet.sui.io:443")
	suiWSURL  = env.GetString("SUI_WS_URL", "") // empty disables the settlement watcher

	sevenkAPIURL      = env.GetString("SEVENK_API_URL", "https://api.7k.ag")
	sevenkPricesURL   = env.GetString("SEVENK_PRICES_URL", "https://prices.7k.ag")
	sevenkStatsURL    = env.GetString("SEVENK_STATS_URL", "https://statistic.7k.ag")
	httpClientTimeout = env.GetDuration("HTTP_CLIENT_TIMEOUT", 10*time.Second)

	configTTL         = env.GetDuration("CONFIG_TTL", time.Minute)
	defaultSlippage   = parseFloat(env.GetString("DEFAULT_SLIPPAGE", "0.01"))
	commissionPartner = env.GetString("COMMISSION_PARTNER", "")
	commissionBps     = env.GetInt("COMMISSION_BPS", 0)
	metricsNamespace  = env.GetString("METRICS_NAMESPACE", "sui_swap_api")
)

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic("invalid float value: " + s)
	}
	return f
}
