// Command swapctl quotes swaps on the 7k aggregator and compiles them into
// unsigned Sui transactions.
package main

import (
	"context"
	"os"
	"time"

	"github.com/easypmnt/sui-swap-api/sevenk"
	"github.com/easypmnt/sui-swap-api/sui"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	apiURL    string
	pricesURL string
	statsURL  string
	rpcURL    string
	wsURL     string
	timeout   time.Duration
	verbose   bool
	json      bool
}

var (
	opts options
	log  = logrus.New()
)

func main() {
	root := &cobra.Command{
		Use:           "swapctl",
		Short:         "Quote and build 7k aggregator swaps on Sui",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			if opts.verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.apiURL, "api-url", sevenk.DefaultAPIURL, "7k aggregator API url")
	flags.StringVar(&opts.pricesURL, "prices-url", sevenk.DefaultPricesURL, "7k prices API url")
	flags.StringVar(&opts.statsURL, "stats-url", sevenk.DefaultStatsURL, "7k statistics API url")
	flags.StringVar(&opts.rpcURL, "rpc-url", sui.DefaultRPCEndpoint, "Sui JSON-RPC url")
	flags.StringVar(&opts.wsURL, "ws-url", "wss://fullnode.mainnet.sui.io:443", "Sui JSON-RPC websocket url")
	flags.DurationVar(&opts.timeout, "timeout", 15*time.Second, "HTTP request timeout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logs")
	flags.BoolVar(&opts.json, "json", false, "print raw JSON")

	root.AddCommand(
		newQuoteCmd(),
		newBuildCmd(),
		newPricesCmd(),
		newHistoryCmd(),
		newConfigCmd(),
		newWatchCmd(),
	)

	if err := root.ExecuteContext(context.Background()); err != nil {
		color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func marketClient() *sevenk.Client {
	return sevenk.NewClient(
		sevenk.WithAPIURL(opts.apiURL),
		sevenk.WithPricesURL(opts.pricesURL),
		sevenk.WithStatsURL(opts.statsURL),
		sevenk.WithTimeout(opts.timeout),
	)
}

func chainClient() *sui.Client {
	return sui.NewClient(
		sui.WithRPCEndpoint(opts.rpcURL),
		sui.WithTimeout(opts.timeout),
	)
}
