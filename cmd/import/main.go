// cmd/import/main.go
// Reads the configured race sheet once and stores it as a new snapshot.
// With -latest it prints the newest stored snapshot instead.
//
// Usage:
//
//	GOOGLE_SHEET_URL="https://docs.google.com/spreadsheets/d/<id>/edit#gid=0" \
//	go run ./cmd/import
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/padraicbc/racecal/config"
	bundb "github.com/padraicbc/racecal/db"
	applog "github.com/padraicbc/racecal/logger"
	"github.com/padraicbc/racecal/sheets"
)

func main() {
	latest := flag.Bool("latest", false, "print the newest stored snapshot and exit")
	flag.Parse()

	ctx := context.Background()
	cfg := config.Load()

	logger, err := applog.New(cfg.Debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db := bundb.Setup(cfg)
	defer db.Close()
	if err := bundb.CreateTables(ctx, db); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}
	store := bundb.NewStore(db)

	if *latest {
		imp, races, err := store.LatestSnapshot(ctx)
		if errors.Is(err, bundb.ErrNotFound) {
			fmt.Println("no snapshots stored")
			return
		}
		if err != nil {
			logger.Fatal("load snapshot failed", zap.Error(err))
		}
		fmt.Printf("import %d at %s: %d races from %s\n",
			imp.ID, imp.CreatedAt.Format("2006-01-02 15:04:05"), len(races), imp.Source)
		for _, r := range races {
			fmt.Printf("  %4d  %s  %s\n", r.ID, r.StartDate.Format("2006-01-02"), r.Name)
		}
		return
	}

	exportURL, err := sheets.ResolveExportURL(cfg.SheetURL)
	if err != nil {
		logger.Fatal("resolve sheet url failed", zap.Error(err))
	}

	parser := sheets.NewParser(
		sheets.WithLocation(cfg.Location),
		sheets.WithReporter(sheets.ZapReporter(logger.Named("sheets"))),
	)
	pipeline := sheets.NewPipeline(sheets.NewRetriever(cfg.FetchTimeout), parser)

	races, err := pipeline.GetRaces(ctx, cfg.SheetURL)
	if err != nil {
		logger.Fatal("fetch races failed", zap.Error(err))
	}

	imp, err := store.SaveSnapshot(ctx, cfg.SheetURL, exportURL, races)
	if err != nil {
		logger.Fatal("save snapshot failed", zap.Error(err))
	}

	fmt.Printf("import %d: %d races saved\n", imp.ID, imp.RaceCount)
}
