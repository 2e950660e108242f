package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/tourfleet/internal/auth"
	"github.com/ukydev/tourfleet/internal/config"
	"github.com/ukydev/tourfleet/internal/db"
	"github.com/ukydev/tourfleet/internal/events"
	"github.com/ukydev/tourfleet/internal/handlers"
	"github.com/ukydev/tourfleet/internal/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

// loginAttemptsPerMinute limits POST /api/auth/login per client IP.
const loginAttemptsPerMinute = 10

// app is a wired server with everything it has to release on shutdown.
type app struct {
	handler   http.Handler
	mongo     *mongo.Client
	publisher events.Publisher
}

func (a *app) close(ctx context.Context) {
	a.publisher.Close()
	if a.mongo != nil {
		if err := a.mongo.Disconnect(ctx); err != nil {
			log.WithError(err).Warn("Failed to disconnect from MongoDB")
		}
	}
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	authService, err := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return nil, fmt.Errorf("JWT_SECRET: %w", err)
	}

	a := &app{publisher: events.Nop{}}
	var (
		fleet db.Fleet
		users db.UserCollection
	)
	if cfg.UseMemoryStore() {
		log.Warn("Using in-memory store; data is lost on restart")
		fleet = db.NewMemoryFleet()
		users = db.NewMemoryUserCollection()
	} else {
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		a.mongo = client
		database := client.Database(cfg.MongoDB)

		mongoFleet := db.NewMongoFleet(database)
		mongoUsers := &db.MongoUserCollection{Collection: database.Collection("users")}
		if err := mongoFleet.EnsureIndexes(ctx); err != nil {
			a.close(ctx)
			return nil, err
		}
		if err := mongoUsers.EnsureIndexes(ctx); err != nil {
			a.close(ctx)
			return nil, fmt.Errorf("users index: %w", err)
		}
		fleet, users = mongoFleet, mongoUsers
		log.WithField("database", cfg.MongoDB).Info("Connected to MongoDB")
	}

	if cfg.AdminPassword != "" {
		if _, err := authService.EnsureAdmin(ctx, users, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			a.close(ctx)
			return nil, err
		}
	} else if n, err := users.CountUsers(ctx); err == nil && n == 0 {
		log.Warn("No users exist and ADMIN_PASSWORD is empty; nobody can log in")
	}

	if cfg.MQTTBroker != "" {
		publisher, err := events.ConnectMQTT(events.MQTTConfig{
			Broker:      cfg.MQTTBroker,
			ClientID:    cfg.MQTTClientID,
			TopicPrefix: cfg.MQTTTopicPrefix,
			QoS:         1,
		})
		if err != nil {
			// Events are best effort; the API keeps working without them.
			log.WithError(err).WithField("broker", cfg.MQTTBroker).Warn("MQTT unavailable, fleet events disabled")
		} else {
			a.publisher = publisher
		}
	}

	a.handler = handlers.NewRouter(handlers.RouterConfig{
		Auth:       authService,
		Fleet:      handlers.NewFleetHandler(fleet, a.publisher),
		Users:      handlers.NewAuthHandler(authService, users),
		Metrics:    middleware.NewMetrics(),
		LoginLimit: loginAttemptsPerMinute,
	})
	return a, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	if err := cfg.ConfigureLogging(); err != nil {
		log.WithError(err).Fatal("Failed to configure logging")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	a, err := newApp(startCtx, cfg)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("Failed to start")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
	a.close(shutdownCtx)
}
