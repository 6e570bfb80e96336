package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"scoutscore/internal/app"
	"scoutscore/internal/config"
	"scoutscore/internal/logger"
	"scoutscore/pkg/scoutnet"
	"scoutscore/web"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	logLevel := flag.String("loglevel", "", "Log level: debug, info, warn, error (overrides config)")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `ScoutScore - competition scorekeeping for scout events

Usage:
  scoutscore [options]

Options:
  -config string   Path to YAML config file
  -addr string     HTTP listen address (default ":8080")
  -db string       SQLite database path (default "scoutscore.db")
  -loglevel string Log level: debug, info, warn, error (default "info")
  -version         Show version and exit
  -help            Show this help message

Configuration can also come from the environment with a SCOUTSCORE_
prefix, e.g. SCOUTSCORE_ADMIN_EMAIL and SCOUTSCORE_ADMIN_PASSWORD for
bootstrapping the first admin account.

Examples:
  scoutscore                          # Run on :8080 with scoutscore.db
  scoutscore -addr :80 -db /data/camp.db
  scoutscore -config /etc/scoutscore.yml
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("scoutscore %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	appLog := logger.NewWithLevel(logger.ParseLevel(cfg.LogLevel))

	// Scoutnet roster imports are optional; without a configured URL the
	// import endpoints report the integration as disabled
	var scoutnetClient scoutnet.Client
	if cfg.ScoutnetURL != "" {
		scoutnetClient = scoutnet.NewHTTPClient(cfg.ScoutnetURL, cfg.ScoutnetAPIKey, appLog)
	}

	a, err := app.New(appLog, *cfg, scoutnetClient, web.GetTemplatesFS(), web.GetStaticFS())
	if err != nil {
		log.Fatal("Failed to initialize application: ", err)
	}
	defer a.Close()

	if err := a.EnsureAdminUser(context.Background()); err != nil {
		log.Fatal("Failed to bootstrap admin user: ", err)
	}

	if err := a.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
