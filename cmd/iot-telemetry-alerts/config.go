package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/dedup"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/evaluator"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/ingestion"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/notification"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/retention"
	"go.yaml.in/yaml/v2"
)

type flagType int
type flagMap map[flagType]string

const (
	listenAddress flagType = iota
	servicePort
	controlPort

	configurationFile
	sensorsFile
	allowedSeedTenants
	updateExistingConfigurations

	dbHost
	dbUser
	dbPassword
	dbPort
	dbName
	dbSSLMode

	redisAddress
	redisPassword

	mqttBroker
	mqttTopic
	mqttClientID
	mqttUser
	mqttPassword

	kafkaBrokers
	kafkaTopic
	kafkaGroupID
)

type appConfig struct {
	MetricTypes  []evaluator.MetricType        `yaml:"metrictypes"`
	Cooldowns    dedup.CooldownConfig          `yaml:"cooldowns"`
	Notification notification.DispatcherConfig `yaml:"notification"`
	Ingestion    ingestion.Config              `yaml:"ingestion"`
	Retention    retention.Config              `yaml:"retention"`
}

func defaultAppConfig() appConfig {
	return appConfig{
		Cooldowns:    dedup.DefaultConfig(),
		Notification: notification.DefaultConfig(),
		Ingestion:    ingestion.DefaultConfig(),
		Retention:    retention.DefaultConfig(),
	}
}

func (c appConfig) Validate() error {
	return errors.Join(
		evaluator.EvaluatorConfig{MetricTypes: c.MetricTypes}.Validate(),
		c.Cooldowns.Validate(),
		c.Notification.Validate(),
		c.Ingestion.Validate(),
		c.Retention.Validate(),
	)
}

// parseExternalConfigFile overlays the yaml file on the defaults, omitted keys keep their default value.
func parseExternalConfigFile(_ context.Context, cfgFile io.ReadCloser) (*appConfig, error) {
	defer cfgFile.Close()

	b, err := io.ReadAll(cfgFile)
	if err != nil {
		return nil, err
	}

	cfg := defaultAppConfig()
	err = yaml.Unmarshal(b, &cfg)
	if err != nil {
		return nil, err
	}

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
