package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/alertconfig"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/alerts"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/ingestion"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/retention"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("iot-telemetry-alerts/api")

// Services are the application services exposed over http. The push handlers
// are optional and their routes are only mounted when set.
type Services struct {
	Ingestor  ingestion.Ingestor
	Alerts    alerts.AlertService
	Configs   alertconfig.AlertConfigService
	Retention retention.Scheduler
	WebSocket http.Handler
	Events    http.Handler
}

func RegisterHandlers(ctx context.Context, router *chi.Mux, svc Services) *chi.Mux {

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	log := logging.GetFromContext(ctx)

	router.Route("/api/v0", func(r chi.Router) {
		r.Post("/readings", createReadingHandler(log, svc.Ingestor))
		r.Get("/alerts", queryAlertsHandler(log, svc.Alerts))

		r.Route("/sensors/{sensorID}", func(r chi.Router) {
			r.Get("/alertconfig", getAlertConfigHandler(log, svc.Configs))
			r.Put("/alertconfig", putAlertConfigHandler(log, svc.Configs))
			r.Delete("/cooldowns", invalidateCooldownsHandler(log, svc.Alerts))
		})

		r.Post("/retention/run", triggerRetentionHandler(log, svc.Retention))

		if svc.WebSocket != nil {
			r.Get("/ws", svc.WebSocket.ServeHTTP)
		}
		if svc.Events != nil {
			r.Get("/events", svc.Events.ServeHTTP)
		}
	})

	return router
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func createReadingHandler(log *slog.Logger, svc ingestion.Ingestor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "create-reading")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			requestLogger.Error("unable to read body", "err", err.Error())
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var msg types.ReadingMessage
		err = json.Unmarshal(body, &msg)
		if err != nil {
			requestLogger.Error("unable to unmarshal body", "err", err.Error())
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		reading, err := msg.Reading()
		if err != nil {
			requestLogger.Debug("invalid reading", "err", err.Error())
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		verdict, err := svc.Ingest(ctx, reading)
		if err != nil {
			if errors.Is(err, ingestion.ErrInvalidReading) {
				requestLogger.Debug("reading rejected", "sensor_id", reading.SensorID, "err", err.Error())
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			requestLogger.Error("unable to ingest reading", "sensor_id", reading.SensorID, "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusAccepted, ApiResponse{Data: verdict}.Byte())
	}
}

func queryAlertsHandler(log *slog.Logger, svc alerts.AlertService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "query-alerts")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		conditions := storage.ParseConditions(ctx, r.URL.Query())

		result, err := svc.History(ctx, conditions...)
		if err != nil {
			requestLogger.Error("unable to fetch alerts", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, newCollectionResponse(r.URL, result).Byte())
	}
}

func getAlertConfigHandler(log *slog.Logger, svc alertconfig.AlertConfigService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-alertconfig")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		sensorID := chi.URLParam(r, "sensorID")
		requestLogger = requestLogger.With(slog.String("sensor_id", sensorID))

		cfg, err := svc.Get(ctx, sensorID)
		if errors.Is(err, alertconfig.ErrSensorNotFound) {
			requestLogger.Debug("no alert configuration found")
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err != nil {
			requestLogger.Error("could not fetch alert configuration", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, ApiResponse{Data: cfg}.Byte())
	}
}

func putAlertConfigHandler(log *slog.Logger, svc alertconfig.AlertConfigService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "put-alertconfig")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		sensorID := chi.URLParam(r, "sensorID")
		requestLogger = requestLogger.With(slog.String("sensor_id", sensorID))

		body, err := io.ReadAll(r.Body)
		if err != nil {
			requestLogger.Error("unable to read body", "err", err.Error())
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var cfg types.AlertConfiguration
		err = json.Unmarshal(body, &cfg)
		if err != nil {
			requestLogger.Error("unable to unmarshal body", "err", err.Error())
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if cfg.SensorID != "" && !equalIDs(cfg.SensorID, sensorID) {
			requestLogger.Debug("sensor id in body does not match path", "body_sensor_id", cfg.SensorID)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		cfg.SensorID = sensorID

		err = svc.Set(ctx, cfg)
		if errors.Is(err, alertconfig.ErrSensorNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if errors.Is(err, alertconfig.ErrInvalidConfiguration) {
			requestLogger.Debug("invalid alert configuration", "err", err.Error())
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err != nil {
			requestLogger.Error("unable to store alert configuration", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func invalidateCooldownsHandler(log *slog.Logger, svc alerts.AlertService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "invalidate-cooldowns")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		sensorID := chi.URLParam(r, "sensorID")

		err = svc.Invalidate(ctx, sensorID)
		if errors.Is(err, alerts.ErrMissingSensorID) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err != nil {
			requestLogger.Error("unable to invalidate cooldowns", "sensor_id", sensorID, "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		requestLogger.Info("cooldowns invalidated", "sensor_id", sensorID)
		w.WriteHeader(http.StatusNoContent)
	}
}

func triggerRetentionHandler(log *slog.Logger, svc retention.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "trigger-retention")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		// a dropped connection must not abort a run halfway through a stage
		report, err := svc.Trigger(context.WithoutCancel(ctx))
		if errors.Is(err, retention.ErrConcurrentRun) {
			requestLogger.Info("retention run rejected, another run is active")
			w.WriteHeader(http.StatusConflict)
			return
		}
		if err != nil && !errors.Is(err, retention.ErrRetentionStage) {
			requestLogger.Error("retention run failed", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, ApiResponse{Data: report}.Byte())
	}
}

func equalIDs(a, b string) bool {
	return types.NormalizeSensorID(a) == types.NormalizeSensorID(b)
}
