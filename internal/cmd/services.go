package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/mcdev12/gridlock/internal/draft/engine"
	"github.com/mcdev12/gridlock/internal/draft/gateway"
	"github.com/mcdev12/gridlock/internal/draft/publish"
	"github.com/mcdev12/gridlock/internal/draft/store"
	"github.com/mcdev12/gridlock/internal/player"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
)

type Services struct {
	Players   *player.App
	Engine    *engine.Engine
	Gateway   *gateway.Service
	ConnMgr   *gateway.ConnectionManager
	WSHandler *gateway.WebSocketHandler
	Consumer  *gateway.EventConsumer

	natsConn *nats.Conn
}

func setupServices(database *sql.DB, cfg *Config) (*Services, error) {
	// Database layer → Repository layer → App layer → Gateway layer

	// Player catalog (always Postgres-backed; the sync tool feeds it)
	playerRepo := player.NewRepository(database)
	playerApp := player.NewApp(playerRepo)

	// Draft session store
	draftStore, err := setupDraftStore(database, cfg)
	if err != nil {
		return nil, err
	}

	// Event publishing
	publisher, natsConn, err := setupPublisher(cfg)
	if err != nil {
		return nil, err
	}

	// Engine
	engineOpts := []engine.Option{}
	if cfg.Autopick != nil {
		engineOpts = append(engineOpts, engine.WithWeights(*cfg.Autopick))
	}
	draftEngine := engine.New(draftStore, playerApp, engineOpts...)

	// Gateway: HTTP service plus WebSocket fanout
	gatewayService := gateway.NewService(draftEngine, playerApp, publisher)
	connMgr := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
	wsHandler := gateway.NewWebSocketHandler(connMgr)

	services := &Services{
		Players:   playerApp,
		Engine:    draftEngine,
		Gateway:   gatewayService,
		ConnMgr:   connMgr,
		WSHandler: wsHandler,
		natsConn:  natsConn,
	}
	if natsConn != nil {
		services.Consumer = gateway.NewEventConsumer(connMgr, natsConn, cfg.Draft.EventPrefix)
	}
	return services, nil
}

func setupDraftStore(database *sql.DB, cfg *Config) (engine.DraftStore, error) {
	switch cfg.Draft.Store {
	case "memory":
		log.Printf("Using in-memory draft store")
		return store.NewMemory(), nil
	case "postgres":
		log.Printf("Using Postgres draft store")
		return store.NewPostgres(database), nil
	case "redis":
		addr := getEnv("REDIS_ADDR", "localhost:6379")
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		})
		log.Printf("Using Redis draft store at %s", addr)
		return store.NewRedis(client), nil
	default:
		return nil, fmt.Errorf("unknown draft store %q", cfg.Draft.Store)
	}
}

// setupPublisher connects to NATS when NATS_URL is set, otherwise events are
// only logged. The returned conn is nil in log-only mode.
func setupPublisher(cfg *Config) (publish.Publisher, *nats.Conn, error) {
	url := getEnv("NATS_URL", "")
	if url == "" {
		log.Printf("NATS_URL not set, draft events will be logged only")
		return publish.NewLogPublisher(), nil, nil
	}

	nc, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(natsReconnectWait),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Printf("Connected to NATS at %s", url)
	return publish.NewNATSPublisher(nc, cfg.Draft.EventPrefix), nc, nil
}

func (s *Services) Close() {
	if s.natsConn != nil {
		s.natsConn.Close()
	}
}
