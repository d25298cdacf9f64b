// Command cellarcore manages the sales-management data store: seed demo
// data, export orders as CSV, and report cellar stock below safety levels.
// Configuration comes from the environment, with an optional .env file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"cellarcore/internal/blob"
	"cellarcore/internal/core"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	if len(args) == 0 {
		usage()
		return 2
	}
	command, rest := args[0], args[1:]

	ctx := context.Background()
	store, err := core.OpenPersistentStore(ctx, core.NewDefaultRulesEngine(), logger)
	if err != nil {
		logger.Error("open store", zap.Error(err))
		return 1
	}
	service := core.NewService(store)
	defer func() {
		if err := service.Close(); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}()

	switch command {
	case "seed":
		if err := core.Seed(ctx, store); err != nil {
			logger.Error("seed", zap.Error(err))
			return 1
		}
		logger.Info("demo data seeded")
		return 0
	case "export-orders":
		return exportOrders(ctx, service, logger, rest)
	case "replenishment":
		return replenishment(ctx, service, logger)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", command)
		usage()
		return 2
	}
}

func exportOrders(ctx context.Context, service *core.Service, logger *zap.Logger, args []string) int {
	fs := flag.NewFlagSet("export-orders", flag.ContinueOnError)
	stdout := fs.Bool("stdout", false, "write CSV to stdout instead of the blob store")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *stdout {
		if err := service.WriteOrdersCSV(ctx, os.Stdout); err != nil {
			logger.Error("export orders", zap.Error(err))
			return 1
		}
		return 0
	}

	blobs, err := blob.Open(ctx)
	if err != nil {
		logger.Error("open blob store", zap.Error(err))
		return 1
	}
	info, err := core.NewExporter(service, blobs).ExportOrders(ctx)
	if err != nil {
		logger.Error("export orders", zap.Error(err))
		return 1
	}
	logger.Info("orders exported",
		zap.String("key", info.Key),
		zap.Int64("size_bytes", info.Size),
		zap.String("driver", string(blobs.Driver())))
	return 0
}

func replenishment(ctx context.Context, service *core.Service, logger *zap.Logger) int {
	needed, err := service.ReplenishmentNeeded(ctx)
	if err != nil {
		logger.Error("replenishment report", zap.Error(err))
		return 1
	}
	if len(needed) == 0 {
		fmt.Println("all cellar stock at or above safety levels")
		return 0
	}
	for _, stock := range needed {
		fmt.Printf("%s\tlocation=%s\tproduct=%s\tcurrent=%d\tsafety=%d\n",
			stock.ID, stock.DeliveryLocationID, stock.ProductID, stock.CurrentStock, stock.SafetyStock)
	}
	return 0
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: cellarcore <command>

commands:
  seed            load the demo dataset into an empty store
  export-orders   export orders as CSV to the blob store (-stdout for stdout)
  replenishment   list cellar stock below its safety stock`)
}
