package mqtt

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const (
	defaultQoS     = 1
	publishTimeout = 10 * time.Second
	disconnectWait = 250
)

// Topic is the per-device command topic TVs subscribe to.
func Topic(deviceID string) string {
	return fmt.Sprintf("tv/%s/commands", deviceID)
}

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// Publisher sends commands to paired TVs over MQTT.
type Publisher struct {
	client mqtt.Client
	qos    byte
}

// Connect dials brokerURL and returns a publisher using clientID.
func Connect(brokerURL, clientID string) (*Publisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(10 * time.Second)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	log.Info().Str("broker", brokerURL).Str("client_id", clientID).Msg("MQTT publisher initialized")
	return NewPublisher(client), nil
}

// NewPublisher wraps an already connected client.
func NewPublisher(client mqtt.Client) *Publisher {
	return &Publisher{client: client, qos: defaultQoS}
}

// Publish sends payload to the device's command topic and waits for the broker
// to acknowledge it, the context to end, or publishTimeout to pass.
func (p *Publisher) Publish(ctx context.Context, deviceID string, payload []byte) error {
	topic := Topic(deviceID)
	token := p.client.Publish(topic, p.qos, false, payload)

	select {
	case <-token.Done():
	case <-ctx.Done():
		return fmt.Errorf("publish to %s: %w", topic, ctx.Err())
	case <-time.After(publishTimeout):
		return fmt.Errorf("publish to %s: timed out after %s", topic, publishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to send message to TV device %s: %w", deviceID, err)
	}

	log.Debug().Str("device_id", deviceID).Str("topic", topic).Msg("message sent to TV device")
	return nil
}

func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(disconnectWait)
		log.Info().Msg("MQTT publisher disconnected")
	}
}
