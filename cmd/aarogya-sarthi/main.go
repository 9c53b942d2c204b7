package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nocaptbsm/aarogya--sarthi/internal/api"
	"github.com/nocaptbsm/aarogya--sarthi/internal/feed"
	"github.com/nocaptbsm/aarogya--sarthi/internal/flow"
	"github.com/nocaptbsm/aarogya--sarthi/internal/genai"
	"github.com/nocaptbsm/aarogya--sarthi/internal/messaging"
	"github.com/nocaptbsm/aarogya--sarthi/internal/places"
	"github.com/nocaptbsm/aarogya--sarthi/internal/router"
	"github.com/nocaptbsm/aarogya--sarthi/internal/session"
	"github.com/nocaptbsm/aarogya--sarthi/internal/store"
	"github.com/nocaptbsm/aarogya--sarthi/internal/twiliowhatsapp"
	"github.com/nocaptbsm/aarogya--sarthi/internal/whatsapp"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for state data
	DefaultStateDir = "/var/lib/aarogya-sarthi"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "aarogya-sarthi.db"
	// DefaultWhatsAppDBFileName is the default whatsmeow SQLite filename
	DefaultWhatsAppDBFileName = "whatsmeow.db"
	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout = 10 * time.Second
)

// Transport selects the message delivery backend.
const (
	TransportTwilio   = "twilio"
	TransportWhatsApp = "whatsapp"
)

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	if err := ensureDirectoriesExist(flags); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	if err := run(flags); err != nil {
		slog.Error("Aarogya Sarthi failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("Aarogya Sarthi exited successfully")
}

// Config holds environment configuration
type Config struct {
	DatabaseURL string
	RedisURL    string
	WhatsAppDSN string
	StateDir    string
	OpenAIKey   string
	MapsKey     string
	FeedURL     string
	APIAddr     string
	Transport   string
}

// Flags holds command line flag values
type Flags struct {
	qrOutput  *string
	numeric   *bool
	stateDir  *string
	dbDSN     *string
	redisURL  *string
	waDSN     *string
	openaiKey *string
	mapsKey   *string
	feedURL   *string
	apiAddr   *string
	transport *string
}

// initializeLogger sets up structured logging with debug level
func initializeLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		WhatsAppDSN: os.Getenv("WHATSAPP_DB_DSN"),
		StateDir:    os.Getenv("AAROGYA_STATE_DIR"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		MapsKey:     os.Getenv("GOOGLE_MAPS_API_KEY"),
		FeedURL:     os.Getenv("WHO_FEED_URL"),
		APIAddr:     os.Getenv("API_ADDR"),
		Transport:   os.Getenv("TRANSPORT"),
	}

	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No AAROGYA_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	}
	if config.DatabaseURL == "" {
		config.DatabaseURL = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No DATABASE_URL provided, defaulting to SQLite", "sqlite_path", config.DatabaseURL)
	}
	if config.WhatsAppDSN == "" {
		config.WhatsAppDSN = filepath.Join(config.StateDir, DefaultWhatsAppDBFileName)
	}
	if config.Transport == "" {
		config.Transport = TransportTwilio
	}

	slog.Debug("environment variables loaded",
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"REDIS_URL_SET", config.RedisURL != "",
		"WHATSAPP_DB_DSN_SET", config.WhatsAppDSN != "",
		"AAROGYA_STATE_DIR", config.StateDir,
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"GOOGLE_MAPS_API_KEY_SET", config.MapsKey != "",
		"WHO_FEED_URL_SET", config.FeedURL != "",
		"API_ADDR", config.APIAddr,
		"TRANSPORT", config.Transport)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		qrOutput:  flag.String("qr-output", "", "path to write WhatsApp login QR code"),
		numeric:   flag.Bool("numeric-code", false, "use numeric WhatsApp login code instead of QR code"),
		stateDir:  flag.String("state-dir", config.StateDir, "state directory for Aarogya Sarthi data (overrides $AAROGYA_STATE_DIR)"),
		dbDSN:     flag.String("db-dsn", config.DatabaseURL, "database DSN for the profile store (overrides $DATABASE_URL)"),
		redisURL:  flag.String("redis-url", config.RedisURL, "Redis URL for the session store (overrides $REDIS_URL; empty uses in-memory sessions)"),
		waDSN:     flag.String("whatsapp-db-dsn", config.WhatsAppDSN, "database DSN for the whatsmeow store (overrides $WHATSAPP_DB_DSN)"),
		openaiKey: flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key (overrides $OPENAI_API_KEY)"),
		mapsKey:   flag.String("maps-api-key", config.MapsKey, "Google Maps API key (overrides $GOOGLE_MAPS_API_KEY)"),
		feedURL:   flag.String("feed-url", config.FeedURL, "outbreak alert RSS feed URL (overrides $WHO_FEED_URL)"),
		apiAddr:   flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		transport: flag.String("transport", config.Transport, "message transport: twilio or whatsapp (overrides $TRANSPORT)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"stateDir", *flags.stateDir,
		"dbDSN_set", *flags.dbDSN != "",
		"redisURL_set", *flags.redisURL != "",
		"openaiKeySet", *flags.openaiKey != "",
		"mapsKeySet", *flags.mapsKey != "",
		"apiAddr", *flags.apiAddr,
		"transport", *flags.transport)

	return flags
}

// ensureDirectoriesExist creates necessary directories for file-based storage
func ensureDirectoriesExist(flags Flags) error {
	for _, dsn := range []string{*flags.dbDSN, *flags.waDSN} {
		if dsn == "" || strings.Contains(dsn, "postgres://") || strings.Contains(dsn, "host=") {
			continue
		}
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0755); err != nil {
			slog.Error("Failed to create state directory", "error", err, "state_dir", dir)
			return err
		}
	}
	return nil
}

// run wires the modules together and blocks until shutdown.
func run(flags Flags) error {
	profiles, err := store.NewStore(buildStoreOptions(flags)...)
	if err != nil {
		return err
	}
	defer profiles.Close()

	sessions, err := buildSessionStore(flags)
	if err != nil {
		return err
	}

	rt := router.New(profiles, sessions, buildRouterOptions(flags, profiles)...)

	service, apiOpts, err := buildTransport(flags)
	if err != nil {
		return err
	}
	if *flags.apiAddr != "" {
		apiOpts = append(apiOpts, api.WithAddr(*flags.apiAddr))
	}

	server := api.NewServer(rt, service, profiles, sessions, apiOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errs, err := server.Start(ctx)
	if err != nil {
		return err
	}
	slog.Info("Aarogya Sarthi running", "transport", *flags.transport)

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-errs:
		if err != nil {
			slog.Error("API server error", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return server.Stop(shutdownCtx)
}

// buildStoreOptions constructs profile store configuration options
func buildStoreOptions(flags Flags) []store.Option {
	var storeOpts []store.Option
	if *flags.dbDSN != "" {
		if store.DetectDSNType(*flags.dbDSN) == "postgres" {
			slog.Debug("Detected PostgreSQL DSN, configuring PostgreSQL store", "dsn_set", true)
			storeOpts = append(storeOpts, store.WithPostgresDSN(*flags.dbDSN))
		} else {
			slog.Debug("Detected SQLite DSN, configuring SQLite store", "db_path", *flags.dbDSN)
			storeOpts = append(storeOpts, store.WithSQLiteDSN(*flags.dbDSN))
		}
	} else {
		slog.Debug("No database DSN provided, will use in-memory store")
	}
	return storeOpts
}

// buildSessionStore picks Redis-backed or in-memory session storage.
func buildSessionStore(flags Flags) (session.Store, error) {
	if *flags.redisURL == "" {
		slog.Debug("No Redis URL provided, using in-memory session store")
		return session.NewInMemoryStore(), nil
	}
	redisStore, err := session.NewRedisStore(*flags.redisURL)
	if err != nil {
		return nil, err
	}
	return redisStore, nil
}

// buildRouterOptions wires the feature handlers with whichever
// collaborators are configured. Missing collaborators leave the handler
// in a degraded mode that replies with a user-safe failure message.
func buildRouterOptions(flags Flags, profiles store.Store) []router.Option {
	var oracle flow.Oracle
	var translator flow.Translator
	if *flags.openaiKey != "" {
		client, err := genai.NewClient(genai.WithAPIKey(*flags.openaiKey))
		if err != nil {
			slog.Error("Failed to initialize GenAI client, AI features degraded", "error", err)
		} else {
			oracle = client
			translator = client
		}
	} else {
		slog.Warn("OPENAI_API_KEY not set, symptom checker and alert translation degraded")
	}

	var searcher flow.PlacesSearcher
	if *flags.mapsKey != "" {
		client, err := places.NewClient(places.WithAPIKey(*flags.mapsKey))
		if err != nil {
			slog.Error("Failed to initialize places client, clinic finder degraded", "error", err)
		} else {
			searcher = client
		}
	} else {
		slog.Warn("GOOGLE_MAPS_API_KEY not set, clinic finder degraded")
	}

	var feedOpts []feed.Option
	if *flags.feedURL != "" {
		feedOpts = append(feedOpts, feed.WithURL(*flags.feedURL))
	}

	return []router.Option{
		router.WithSymptomHandler(flow.NewSymptomChecker(oracle)),
		router.WithVaccineHandler(flow.NewVaccineFinder(searcher)),
		router.WithTipsHandler(flow.NewTips()),
		router.WithAlertsHandler(flow.NewAlerts(feed.NewClient(feedOpts...), translator, profiles)),
	}
}

// buildTransport constructs the messaging service for the selected backend.
func buildTransport(flags Flags) (messaging.Service, []api.Option, error) {
	switch *flags.transport {
	case TransportWhatsApp:
		waOpts := []whatsapp.Option{whatsapp.WithDBDSN(*flags.waDSN)}
		if *flags.qrOutput != "" {
			waOpts = append(waOpts, whatsapp.WithQRCodeOutput(*flags.qrOutput))
		}
		if *flags.numeric {
			waOpts = append(waOpts, whatsapp.WithNumericCode())
		}
		client, err := whatsapp.NewClient(waOpts...)
		if err != nil {
			return nil, nil, err
		}
		return messaging.NewWhatsAppService(client), nil, nil

	default:
		client, err := twiliowhatsapp.NewClient()
		if err != nil {
			return nil, nil, err
		}
		service := messaging.NewTwilioService(client)
		return service, []api.Option{api.WithTwilioWebhook(service.WebhookHandler)}, nil
	}
}
