package sink

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/itohio/gowx/pkg/config"
	"github.com/itohio/gowx/pkg/station"
)

const publishTimeout = 5 * time.Second

// Message is the JSON payload published per reading.
type Message struct {
	Timestamp time.Time `json:"timestamp"`
	station.Reading
}

// MQTT publishes readings as JSON to a topic.
type MQTT struct {
	client mqtt.Client
	topic  string
	qos    byte
	now    func() time.Time
}

var _ station.Reporter = (*MQTT)(nil)

// DialMQTT connects to the configured broker.
func DialMQTT(cfg config.MQTTConfig) (*MQTT, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", cfg.Broker, token.Error())
	}

	return NewMQTT(client, cfg.Topic, cfg.QoS), nil
}

// NewMQTT wraps an already connected client.
func NewMQTT(client mqtt.Client, topic string, qos byte) *MQTT {
	return &MQTT{
		client: client,
		topic:  topic,
		qos:    qos,
		now:    time.Now,
	}
}

// Report publishes r.
func (p *MQTT) Report(r station.Reading) error {
	payload, err := json.Marshal(Message{Timestamp: p.now().UTC(), Reading: r})
	if err != nil {
		return fmt.Errorf("mqtt marshal: %w", err)
	}

	token := p.client.Publish(p.topic, p.qos, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("mqtt publish %s: timeout", p.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish %s: %w", p.topic, err)
	}
	return nil
}

// Close disconnects from the broker.
func (p *MQTT) Close() error {
	p.client.Disconnect(250)
	return nil
}
