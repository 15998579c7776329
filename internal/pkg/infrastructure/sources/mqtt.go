package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type MQTTConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
	QoS      byte
}

func (c MQTTConfig) Enabled() bool {
	return c.Broker != "" && c.Topic != ""
}

type MQTTSource struct {
	cfg      MQTTConfig
	client   mqtt.Client
	ingestor Ingestor
	ctx      context.Context
}

func NewMQTTSource(cfg MQTTConfig, i Ingestor) *MQTTSource {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)
	opts.SetConnectTimeout(10 * time.Second)

	s := &MQTTSource{cfg: cfg, ingestor: i, ctx: context.Background()}

	// a clean session drops subscriptions, so every (re)connect subscribes again
	opts.SetOnConnectHandler(s.onConnect)

	s.client = mqtt.NewClient(opts)

	return s
}

func (s *MQTTSource) Start(ctx context.Context) error {
	s.ctx = ctx

	if token := s.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to mqtt broker %s: %w", s.cfg.Broker, token.Error())
	}

	return nil
}

func (s *MQTTSource) onConnect(c mqtt.Client) {
	log := logging.GetFromContext(s.ctx)

	token := c.Subscribe(s.cfg.Topic, s.cfg.QoS, newMessageHandler(s.ctx, s.ingestor))
	if token.Wait() && token.Error() != nil {
		log.Error("failed to subscribe to mqtt topic", "topic", s.cfg.Topic, "err", token.Error().Error())
		return
	}

	log.Info("subscribed to mqtt readings", "broker", s.cfg.Broker, "topic", s.cfg.Topic)
}

func (s *MQTTSource) Stop() {
	if s.client.IsConnected() {
		s.client.Unsubscribe(s.cfg.Topic).Wait()
	}
	s.client.Disconnect(250)
}

func newMessageHandler(ctx context.Context, i Ingestor) mqtt.MessageHandler {
	return func(_ mqtt.Client, msg mqtt.Message) {
		_ = handle(ctx, i, "mqtt", msg.Topic(), msg.Payload())
	}
}
