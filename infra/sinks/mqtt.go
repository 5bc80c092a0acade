package sinks

import (
	"context"
	"encoding/json"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/commercepulse/telemetry/core/metric"
)

// MQTTConfig defines the connection parameters for the MQTT sink.
type MQTTConfig struct {
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	// Topic is the topic prefix; the metric name is appended as suffix.
	Topic  string `json:"topic"`
	QoS    byte   `json:"qos"`
	Retain bool   `json:"retain"`
}

// mqttClient is the subset of the Paho client used by the sink.
type mqttClient interface {
	Connect() paho.Token
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

var newMQTTClient = func(opts *paho.ClientOptions) mqttClient {
	return paho.NewClient(opts)
}

// MQTTSink publishes enriched Metrics as JSON messages, one topic per metric
// name under the configured prefix.
type MQTTSink struct {
	cli    mqttClient
	topic  string
	qos    byte
	retain bool
}

type mqttPayload struct {
	Name       string            `json:"name"`
	Value      *float64          `json:"value,omitempty"`
	Tags       map[string]string `json:"tags,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CapturedAt time.Time         `json:"captured_at"`
}

// NewMQTTSink connects to the broker and returns the sink.
func NewMQTTSink(cfg MQTTConfig) (*MQTTSink, error) {
	id := cfg.ClientID
	if id == "" {
		id = "telemetry-sink-" + uuid.NewString()
	}
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(id).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true)
	cli := newMQTTClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	topic := cfg.Topic
	if topic == "" {
		topic = "telemetry/metrics"
	}
	return &MQTTSink{cli: cli, topic: topic, qos: cfg.QoS, retain: cfg.Retain}, nil
}

// Capture publishes the Metric and waits for the broker acknowledgment
// within the delivery budget carried by ctx.
func (s *MQTTSink) Capture(ctx context.Context, m metric.Metric) error {
	data, err := json.Marshal(mqttPayload{
		Name:       m.Name,
		Value:      m.Value,
		Tags:       m.Tags,
		Metadata:   m.Metadata,
		CapturedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	token := s.cli.Publish(s.topic+"/"+m.Name, s.qos, s.retain, data)
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close disconnects from the broker.
func (s *MQTTSink) Close() {
	s.cli.Disconnect(250)
}
