package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/easypmnt/sui-swap-api/aggregator"
	"github.com/easypmnt/sui-swap-api/dexconfig"
	"github.com/easypmnt/sui-swap-api/events"
	"github.com/easypmnt/sui-swap-api/sevenk"
	"github.com/easypmnt/sui-swap-api/utils"
	"github.com/easypmnt/sui-swap-api/websocketrpc"
	"github.com/fatih/color"
	kitlog "github.com/go-kit/log"
	"github.com/spf13/cobra"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
)

type quoteFlags struct {
	from, to, amount string
	sources          []string
	excluded         []string
}

func (f *quoteFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", utils.SuiType, "coin type to sell")
	cmd.Flags().StringVar(&f.to, "to", utils.NativeUSDCType, "coin type to buy")
	cmd.Flags().StringVar(&f.amount, "amount", "", "raw amount to sell")
	cmd.Flags().StringSliceVar(&f.sources, "sources", nil, "exchanges to route through (default all)")
	cmd.Flags().StringSliceVar(&f.excluded, "exclude-pools", nil, "pool ids to avoid")
	cmd.MarkFlagRequired("amount")
}

func (f *quoteFlags) quote(ctx context.Context, market *sevenk.Client) (*sevenk.QuoteResponse, error) {
	params := sevenk.QuoteParams{
		TokenIn:       f.from,
		TokenOut:      f.to,
		AmountIn:      f.amount,
		ExcludedPools: f.excluded,
	}
	for _, name := range f.sources {
		s, err := sevenk.ParseSource(name)
		if err != nil {
			return nil, err
		}
		params.Sources = append(params.Sources, s)
	}

	log.WithField("params", params).Debug("requesting quote")
	return market.Quote(ctx, params)
}

func newQuoteCmd() *cobra.Command {
	var f quoteFlags
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Request a routed quote",
		RunE: func(cmd *cobra.Command, _ []string) error {
			quote, err := f.quote(cmd.Context(), marketClient())
			if err != nil {
				return err
			}
			if opts.json {
				return utils.PrettyPrint(os.Stdout, quote)
			}
			printQuote(quote)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func printQuote(q *sevenk.QuoteResponse) {
	fmt.Printf("%s %s -> %s %s\n", bold(q.SwapAmount), cyan(q.TokenIn), bold(q.ReturnAmount), cyan(q.TokenOut))
	if q.PriceImpact != nil {
		fmt.Printf("price impact: %.4f%%\n", *q.PriceImpact*100)
	}
	if q.Warning != "" {
		color.Yellow("warning: %s", q.Warning)
	}

	routes, err := aggregator.GroupSwapRoutes(q)
	if err != nil {
		color.Red("routes: %v", err)
		return
	}
	for i, route := range routes {
		fmt.Printf("route %d %s\n", i, faint(route[0].Swap.Amount))
		for _, hop := range route {
			fmt.Printf("  %-10s %s %s\n", hop.Pool.Type, hop.Swap.PoolID, faint(hop.Swap.ReturnAmount))
		}
	}
}

func newBuildCmd() *cobra.Command {
	var (
		f          quoteFlags
		sender     string
		slippage   float64
		commission aggregator.Commission
		devInspect bool
		estimate   bool
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Quote a swap and compile it into an unsigned transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			market := marketClient()

			quote, err := f.quote(ctx, market)
			if err != nil {
				return err
			}

			svcOpts := []aggregator.ServiceOption{}
			if opts.verbose {
				svcOpts = append(svcOpts, aggregator.WithLogger(kitlog.NewLogfmtLogger(os.Stderr)))
			}
			svc := aggregator.NewService(chainClient(), dexconfig.NewCache(market), svcOpts...)

			params := aggregator.BuildTxParams{
				Quote:          quote,
				AccountAddress: sender,
				Slippage:       slippage,
				Commission:     commission,
				DevInspect:     devInspect,
			}
			result, err := svc.BuildTx(ctx, params)
			if err != nil {
				return err
			}
			tx, err := result.Program.EncodeBase64()
			if err != nil {
				return err
			}

			out := map[string]interface{}{
				"build_id":     result.ID,
				"transaction":  tx,
				"min_received": result.MinReceived,
				"routes":       len(result.Routes),
			}

			if estimate {
				price, err := market.SuiPrice(ctx)
				if err != nil {
					return err
				}
				gas, err := svc.EstimateGasFee(ctx, params, price)
				if err != nil {
					return err
				}
				out["gas"] = gas
			}

			if opts.json {
				return utils.PrettyPrint(os.Stdout, out)
			}

			printQuote(quote)
			fmt.Printf("min received: %s\n", green(result.MinReceived))
			if gas, ok := out["gas"].(aggregator.GasEstimate); ok {
				fmt.Printf("gas: %d MIST (%v SUI, $%.4f)\n", gas.FeeMist, gas.FeeSui, gas.FeeUSD)
			}
			fmt.Println(bold("transaction:"))
			fmt.Println(tx)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&sender, "sender", "", "sender address")
	cmd.Flags().Float64Var(&slippage, "slippage", 0.01, "slippage tolerance as a fraction")
	cmd.Flags().StringVar(&commission.Partner, "partner", "", "commission partner address")
	cmd.Flags().Uint16Var(&commission.CommissionBps, "bps", 0, "commission in basis points")
	cmd.Flags().BoolVar(&devInspect, "dev-inspect", false, "build for a dry run")
	cmd.Flags().BoolVar(&estimate, "estimate", false, "estimate the gas fee")
	cmd.MarkFlagRequired("sender")
	return cmd
}

func newPricesCmd() *cobra.Command {
	var vsCoin string
	cmd := &cobra.Command{
		Use:   "prices COIN_TYPE...",
		Short: "Print token prices",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prices, err := marketClient().Prices(cmd.Context(), args, vsCoin)
			if err != nil {
				return err
			}
			if opts.json {
				return utils.PrettyPrint(os.Stdout, prices)
			}
			for _, id := range args {
				fmt.Printf("%s %v\n", cyan(id), prices[id])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&vsCoin, "vs", "", "quote coin type (default native USDC)")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	var params sevenk.HistoryParams
	cmd := &cobra.Command{
		Use:   "history ADDRESS",
		Short: "Print the swap history of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.Owner = args[0]
			history, err := marketClient().SwapHistory(cmd.Context(), params)
			if err != nil {
				return err
			}
			if opts.json {
				return utils.PrettyPrint(os.Stdout, history)
			}
			fmt.Printf("%s swaps\n", bold(history.Count))
			for _, h := range history.History {
				fmt.Printf("%s %s %s -> %s %s %s\n", faint(h.Timestamp), h.AmountIn, cyan(h.CoinIn), h.AmountOut, cyan(h.CoinOut), faint(h.Digest))
			}
			return nil
		},
	}
	cmd.Flags().Uint64Var(&params.Offset, "offset", 0, "entries to skip")
	cmd.Flags().Uint64Var(&params.Limit, "limit", 10, "page size")
	cmd.Flags().StringVar(&params.TokenPair, "pair", "", "token pair filter")
	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the current exchange configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := marketClient().FetchConfig(cmd.Context())
			if err != nil {
				return err
			}
			return utils.PrettyPrint(os.Stdout, cfg)
		},
	}
}

func newWatchCmd() *cobra.Command {
	var pkg string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream settled swaps",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ws, err := websocketrpc.NewClient(ctx, opts.wsURL, websocketrpc.WithLogger(log))
			if err != nil {
				return err
			}
			defer ws.Close()

			bus := events.NewBus()
			defer bus.Close()

			sub, cancel := bus.Subscribe()
			defer cancel()

			id, err := ws.WatchSettlements(ctx, pkg, bus.Fire)
			if err != nil {
				return err
			}
			log.WithField("subscription", id).Info("watching settlements")

			for {
				select {
				case <-ctx.Done():
					return ws.Unsubscribe(context.Background(), websocketrpc.UnsubscribeEvent, id)
				case <-ws.Done():
					return websocketrpc.ErrClientClosed
				case ev := <-sub:
					if opts.json {
						utils.PrettyPrint(os.Stdout, ev.Payload...)
						continue
					}
					if len(ev.Payload) == 0 {
						continue
					}
					if p, ok := ev.Payload[0].(events.SwapSettledPayload); ok {
						fmt.Printf("%s %s %s -> %s %s %s\n",
							green(ev.Name), p.AmountIn, cyan(shortType(p.CoinIn)),
							p.AmountOut, cyan(shortType(p.CoinOut)), faint(p.Digest))
					}
				}
			}
		},
	}
	cmd.Flags().StringVar(&pkg, "package", aggregator.DefaultSettlement().Package, "settlement package id")
	return cmd
}

// shortType trims the package address of a coin type.
func shortType(t string) string {
	if i := strings.Index(t, "::"); i >= 0 {
		return t[i+2:]
	}
	return t
}
