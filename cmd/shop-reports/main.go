// Command shop-reports fetches orders from the admin API for a date range
// and writes the returns and reorders CSV reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/saachistyle/shop-reports/pkg/cache"
	"github.com/saachistyle/shop-reports/pkg/config"
	"github.com/saachistyle/shop-reports/pkg/export"
	"github.com/saachistyle/shop-reports/pkg/logging"
	"github.com/saachistyle/shop-reports/pkg/pagination"
	"github.com/saachistyle/shop-reports/pkg/report"
	"github.com/saachistyle/shop-reports/pkg/shopify"
)

const dateLayout = "2006-01-02"

func main() {
	startDate := flag.String("start", "", "start date (YYYY-MM-DD), required")
	endDate := flag.String("end", "", "end date (YYYY-MM-DD), defaults to today")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup(logging.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		Output: os.Stderr,
	})

	if *startDate == "" {
		fmt.Fprintln(os.Stderr, "usage: shop-reports -start YYYY-MM-DD [-end YYYY-MM-DD]")
		os.Exit(2)
	}
	if _, err := time.Parse(dateLayout, *startDate); err != nil {
		fmt.Fprintf(os.Stderr, "invalid start date %q: expected YYYY-MM-DD\n", *startDate)
		os.Exit(2)
	}
	end := *endDate
	if end == "" {
		end = time.Now().UTC().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, end); err != nil {
		fmt.Fprintf(os.Stderr, "invalid end date %q: expected YYYY-MM-DD\n", end)
		os.Exit(2)
	}

	ctx := context.Background()

	clientCfg := shopify.Config{
		ShopName:         cfg.Shop.Name,
		AccessToken:      cfg.Shop.AccessToken,
		APIVersion:       cfg.Shop.APIVersion,
		MaxRetries:       cfg.Fetch.MaxRetries,
		RetryDelay:       cfg.Fetch.RetryDelay,
		ThrottleInterval: cfg.Fetch.ThrottleInterval,
	}

	if cfg.Cache.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("Redis unavailable, page cache disabled")
		} else {
			clientCfg.Cache = cache.NewManager(redisClient, cfg.Cache.TTL)
			logger.Info().Str("addr", cfg.Cache.RedisAddr).Msg("Page cache enabled")
		}
	}

	client, err := shopify.New(clientCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create API client")
	}

	aggregator := report.NewAggregator()
	driver := pagination.NewDriver(client, aggregator, pagination.Config{
		MaxConcurrency: cfg.Fetch.MaxConcurrency,
	})

	logger.Info().
		Str("shop", cfg.Shop.Name).
		Str("start", *startDate).
		Str("end", end).
		Msg("Starting order export")
	fmt.Println("Processing...please wait.")

	params := shopify.OrderParams(*startDate, end, cfg.Fetch.PageSize)
	driver.Run(ctx, client.OrdersURL(), params)

	logger.Info().Int("orders", aggregator.UniqueOrders()).Msg("Order export complete")

	if err := export.WriteCSV(cfg.Output.ReturnsPath, aggregator.BuildReturns()); err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Output.ReturnsPath).Msg("Failed to write returns report")
	}
	fmt.Println("Return data has been saved to CSV.")

	if err := export.WriteCSV(cfg.Output.ReordersPath, aggregator.BuildReorders()); err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Output.ReordersPath).Msg("Failed to write reorders report")
	}
	fmt.Println("Reorder data has been saved to CSV.")

	fmt.Println("Completed!")
}
