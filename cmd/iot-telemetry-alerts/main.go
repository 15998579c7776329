package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/alertconfig"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/alerts"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/dedup"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/evaluator"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/ingestion"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/notification"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/retention"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/webevents"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/infrastructure/router"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/infrastructure/sources"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/infrastructure/websocket"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/presentation/api"
	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName string = "iot-telemetry-alerts"

const shutdownTimeout = 30 * time.Second

func defaultFlags() flagMap {
	return flagMap{
		listenAddress: "0.0.0.0",
		servicePort:   "8080",
		controlPort:   "8000",

		configurationFile:  "/opt/diwise/config/config.yaml",
		sensorsFile:        "/opt/diwise/config/sensors.csv",
		allowedSeedTenants: "default",

		updateExistingConfigurations: "false",

		dbHost:     "",
		dbUser:     "",
		dbPassword: "",
		dbPort:     "5432",
		dbName:     "diwise",
		dbSSLMode:  "disable",

		mqttClientID: serviceName,
		kafkaGroupID: serviceName,
	}
}

func main() {
	ctx, flags := parseExternalConfig(context.Background(), defaultFlags())

	serviceVersion := buildinfo.SourceVersion()
	ctx, logger, cleanup := o11y.Init(ctx, serviceName, serviceVersion, "json")
	defer cleanup()

	cfgFile, err := os.Open(flags[configurationFile])
	exitIf(err, logger, "could not open configuration file")

	cfg, err := parseExternalConfigFile(ctx, cfgFile)
	exitIf(err, logger, "could not load configuration")

	sensors, err := openOptional(flags[sensorsFile])
	exitIf(err, logger, "could not open sensors file")

	a, err := initialize(ctx, flags, cfg, sensors)
	exitIf(err, logger, "failed to initialize service")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = a.run(ctx)
	exitIf(err, logger, "service stopped with errors")
}

type app struct {
	flags flagMap

	store     *storage.Storage
	messenger messaging.MsgContext
	redis     *redis.Client

	hub       *websocket.Hub
	events    webevents.WebEvents
	alerts    alerts.AlertService
	configs   alertconfig.AlertConfigService
	ingestor  ingestion.Ingestor
	scheduler retention.Scheduler

	mqtt  *sources.MQTTSource
	kafka *sources.KafkaSource

	// background components outlive the signal context so that queued alerts are drained on shutdown
	background context.Context
	cancel     context.CancelFunc
}

func initialize(ctx context.Context, flags flagMap, cfg *appConfig, sensors io.ReadCloser) (*app, error) {
	log := logging.GetFromContext(ctx)

	a := &app{flags: flags}
	a.background, a.cancel = context.WithCancel(context.WithoutCancel(ctx))

	var err error

	updateExisting, _ := strconv.ParseBool(flags[updateExistingConfigurations])

	a.store, err = storage.New(ctx, storage.NewConfig(
		flags[dbHost], flags[dbUser], flags[dbPassword], flags[dbPort], flags[dbName], flags[dbSSLMode], updateExisting))
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	if err = a.store.Initialize(ctx); err != nil {
		return nil, err
	}

	e := evaluator.New(&evaluator.EvaluatorConfig{MetricTypes: cfg.MetricTypes})

	if sensors != nil {
		err = storage.SeedSensors(ctx, a.store, sensors, strings.Split(flags[allowedSeedTenants], ","), seedValidator(e))
		if err != nil {
			return nil, err
		}
	}

	a.messenger, err = messaging.Initialize(ctx, messaging.LoadConfiguration(ctx, serviceName, log))
	if err != nil {
		return nil, fmt.Errorf("failed to init messenger: %w", err)
	}
	a.messenger.Start()

	if flags[redisAddress] != "" {
		a.redis = redis.NewClient(&redis.Options{Addr: flags[redisAddress], Password: flags[redisPassword]})
		if err = a.redis.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("could not connect to redis: %w", err)
		}
	}

	cache, err := newCache(a.background, cfg.Cooldowns, a.redis)
	if err != nil {
		return nil, err
	}

	a.hub = websocket.NewHub()
	a.events = webevents.New()

	dispatcher := notification.New(cfg.Notification,
		newEmailSender(ctx, cfg.Notification.Email),
		newSMSSender(ctx, cfg.Notification.SMS),
		a.hub, a.events,
	)

	a.alerts = alerts.New(a.store, cache, dispatcher, a.messenger, cfg.Cooldowns)
	a.configs = alertconfig.New(a.store, e, a.alerts)
	a.ingestor = ingestion.New(cfg.Ingestion, a.store, e, a.alerts, a.messenger)
	a.scheduler = retention.New(cfg.Retention, a.store, a.messenger, a.redis)

	mqttCfg := sources.MQTTConfig{
		Broker:   flags[mqttBroker],
		ClientID: flags[mqttClientID],
		Username: flags[mqttUser],
		Password: flags[mqttPassword],
		Topic:    flags[mqttTopic],
		QoS:      1,
	}
	if mqttCfg.Enabled() {
		a.mqtt = sources.NewMQTTSource(mqttCfg, a.ingestor)
	}

	kafkaCfg := sources.KafkaConfig{
		Brokers: splitList(flags[kafkaBrokers]),
		Topic:   flags[kafkaTopic],
		GroupID: flags[kafkaGroupID],
	}
	if kafkaCfg.Enabled() {
		a.kafka = sources.NewKafkaSource(kafkaCfg, a.ingestor)
	}

	return a, nil
}

func seedValidator(e evaluator.Evaluator) storage.ConfigValidator {
	return func(sensor types.Sensor, cfg types.AlertConfiguration) error {
		return alertconfig.Validate(cfg, e.Polarity(sensor.Metric))
	}
}

func newCache(ctx context.Context, cfg dedup.CooldownConfig, client *redis.Client) (dedup.Cache, error) {
	if cfg.Backend == dedup.BackendRedis {
		if client == nil {
			return nil, errors.New("redis dedup backend requires REDIS_ADDRESS")
		}
		return dedup.NewRedisCache(client, cfg), nil
	}
	return dedup.NewMemoryCache(ctx, cfg, time.Minute), nil
}

func newEmailSender(ctx context.Context, cfg notification.ProviderConfig) notification.EmailSender {
	if !cfg.Enabled() {
		logging.GetFromContext(ctx).Warn("no email provider configured, email notifications are only logged")
		return notification.NewLogSender()
	}
	return notification.NewEmailSender(cfg)
}

func newSMSSender(ctx context.Context, cfg notification.ProviderConfig) notification.SMSSender {
	if !cfg.Enabled() {
		logging.GetFromContext(ctx).Warn("no sms provider configured, sms notifications are only logged")
		return notification.NewLogSender()
	}
	return notification.NewSMSSender(cfg)
}

func (a *app) run(ctx context.Context) error {
	log := logging.GetFromContext(ctx)

	if err := a.alerts.Prime(ctx); err != nil {
		log.Warn("could not prime cooldowns from alert history", "err", err.Error())
	}

	go a.hub.Run(a.background)

	a.ingestor.Start(a.background)

	if err := a.scheduler.Start(a.background); err != nil {
		return err
	}

	sourcesCtx, stopSources := context.WithCancel(a.background)
	defer stopSources()

	if a.mqtt != nil {
		if err := a.mqtt.Start(sourcesCtx); err != nil {
			return err
		}
	}

	kafkaDone := make(chan error, 1)
	if a.kafka != nil {
		go func() { kafkaDone <- a.kafka.Run(sourcesCtx) }()
	} else {
		close(kafkaDone)
	}

	r := api.RegisterHandlers(ctx, router.New(serviceName), api.Services{
		Ingestor:  a.ingestor,
		Alerts:    a.alerts,
		Configs:   a.configs,
		Retention: a.scheduler,
		WebSocket: a.hub,
		Events:    a.events.Server(),
	})

	public := &http.Server{
		Addr:    net.JoinHostPort(a.flags[listenAddress], a.flags[servicePort]),
		Handler: r,
	}

	control := &http.Server{
		Addr:    net.JoinHostPort(a.flags[listenAddress], a.flags[controlPort]),
		Handler: controlHandler(),
	}

	serverErr := make(chan error, 2)
	for _, srv := range []*http.Server{public, control} {
		go func() {
			log.Info("starting to listen for connections", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()
	}

	var runErr error

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case runErr = <-serverErr:
		log.Error("http server failed", "err", runErr.Error())
	case err := <-kafkaDone:
		if err != nil {
			runErr = err
			log.Error("kafka source failed", "err", err.Error())
		}
	}

	return errors.Join(runErr, a.shutdown(log, stopSources, public, control))
}

func (a *app) shutdown(log *slog.Logger, stopSources context.CancelFunc, servers ...*http.Server) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(a.background), shutdownTimeout)
	defer cancel()

	var errs []error

	// sse clients keep their requests open until the event server goes away
	a.events.Shutdown()

	for _, srv := range servers {
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if a.mqtt != nil {
		a.mqtt.Stop()
	}
	stopSources()
	if a.kafka != nil {
		errs = append(errs, a.kafka.Close())
	}

	if err := a.ingestor.Stop(ctx); err != nil {
		log.Error("alert workers did not drain", "err", err.Error())
		errs = append(errs, err)
	}

	a.scheduler.Stop()
	a.cancel()

	a.messenger.Close()
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	a.store.Close()

	log.Info("shutdown complete")

	return errors.Join(errs...)
}

func controlHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func openOptional(path string) (io.ReadCloser, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	return f, err
}

func splitList(s string) []string {
	var list []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

func parseExternalConfig(ctx context.Context, flags flagMap) (context.Context, flagMap) {
	// Allow environment variables to override certain defaults
	envOrDef := env.GetVariableOrDefault

	flags[listenAddress] = envOrDef(ctx, "LISTEN_ADDRESS", flags[listenAddress])
	flags[controlPort] = envOrDef(ctx, "CONTROL_PORT", flags[controlPort])
	flags[servicePort] = envOrDef(ctx, "SERVICE_PORT", flags[servicePort])

	flags[configurationFile] = envOrDef(ctx, "CONFIG_FILE", flags[configurationFile])
	flags[sensorsFile] = envOrDef(ctx, "SENSORS_FILE", flags[sensorsFile])
	flags[allowedSeedTenants] = envOrDef(ctx, "ALLOWED_SEED_TENANTS", flags[allowedSeedTenants])
	flags[updateExistingConfigurations] = envOrDef(ctx, "UPDATE_EXISTING_CONFIGURATIONS", flags[updateExistingConfigurations])

	flags[dbHost] = envOrDef(ctx, "POSTGRES_HOST", flags[dbHost])
	flags[dbPort] = envOrDef(ctx, "POSTGRES_PORT", flags[dbPort])
	flags[dbName] = envOrDef(ctx, "POSTGRES_DBNAME", flags[dbName])
	flags[dbUser] = envOrDef(ctx, "POSTGRES_USER", flags[dbUser])
	flags[dbPassword] = envOrDef(ctx, "POSTGRES_PASSWORD", flags[dbPassword])
	flags[dbSSLMode] = envOrDef(ctx, "POSTGRES_SSLMODE", flags[dbSSLMode])

	flags[redisAddress] = envOrDef(ctx, "REDIS_ADDRESS", flags[redisAddress])
	flags[redisPassword] = envOrDef(ctx, "REDIS_PASSWORD", flags[redisPassword])

	flags[mqttBroker] = envOrDef(ctx, "MQTT_BROKER", flags[mqttBroker])
	flags[mqttTopic] = envOrDef(ctx, "MQTT_TOPIC", flags[mqttTopic])
	flags[mqttClientID] = envOrDef(ctx, "MQTT_CLIENT_ID", flags[mqttClientID])
	flags[mqttUser] = envOrDef(ctx, "MQTT_USER", flags[mqttUser])
	flags[mqttPassword] = envOrDef(ctx, "MQTT_PASSWORD", flags[mqttPassword])

	flags[kafkaBrokers] = envOrDef(ctx, "KAFKA_BROKERS", flags[kafkaBrokers])
	flags[kafkaTopic] = envOrDef(ctx, "KAFKA_TOPIC", flags[kafkaTopic])
	flags[kafkaGroupID] = envOrDef(ctx, "KAFKA_GROUP_ID", flags[kafkaGroupID])

	apply := func(f flagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("config", "alerting and retention configuration file", apply(configurationFile))
	flag.Func("sensors", "list of known sensors and their alert configuration", apply(sensorsFile))
	flag.Parse()

	return ctx, flags
}

func exitIf(err error, logger *slog.Logger, msg string, args ...any) {
	if err != nil {
		logger.With(args...).Error(msg, "err", err.Error())
		time.Sleep(2 * time.Second)
		os.Exit(1)
	}
}
