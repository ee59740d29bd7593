package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/mderasse/go-bopi/internal/bopi"
	"github.com/mderasse/go-bopi/internal/logging"
)

const (
	// DefaultTopicPrefix is the root of all published topics
	DefaultTopicPrefix = "bopi"

	// DefaultInterval is the default poll interval
	DefaultInterval = 30 * time.Second

	// DefaultClientID identifies this publisher to the broker
	DefaultClientID = "bopi-publisher"

	connectTimeout    = 10 * time.Second
	disconnectQuiesce = 250 // milliseconds, paho convention
)

// Options configures a Publisher
type Options struct {
	// BrokerURL is the MQTT broker address (e.g., "tcp://localhost:1883")
	BrokerURL string

	// ClientID identifies this publisher to the broker
	ClientID string

	// TopicPrefix is prepended to every published topic
	TopicPrefix string

	// Interval is how often the sensors are polled
	Interval time.Duration
}

// Publisher polls a BoPi box on a fixed interval and publishes the sensor
// state to MQTT: the full state as JSON on <prefix>/sensors, and each
// metric individually on <prefix>/sensors/<field>.
type Publisher struct {
	client *bopi.Client
	mqtt   mqtt.Client
	opts   Options
	log    *zap.Logger
}

// New creates a publisher for the given box client
func New(client *bopi.Client, opts Options) (*Publisher, error) {
	if client == nil {
		return nil, fmt.Errorf("bopi client is required")
	}
	if opts.BrokerURL == "" {
		return nil, fmt.Errorf("broker URL is required")
	}
	if opts.ClientID == "" {
		opts.ClientID = DefaultClientID
	}
	if opts.TopicPrefix == "" {
		opts.TopicPrefix = DefaultTopicPrefix
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}

	mqttOpts := mqtt.NewClientOptions().
		AddBroker(opts.BrokerURL).
		SetClientID(opts.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout)

	return &Publisher{
		client: client,
		mqtt:   mqtt.NewClient(mqttOpts),
		opts:   opts,
		log:    logging.GetLogger(),
	}, nil
}

// Connect establishes the broker connection
func (p *Publisher) Connect() error {
	if token := p.mqtt.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker %s: %w", p.opts.BrokerURL, token.Error())
	}
	p.log.Info("Connected to MQTT broker", zap.String("broker", p.opts.BrokerURL))
	return nil
}

// Run polls the box until the context is cancelled. Poll failures are
// logged and skipped; the next tick tries again. The box client itself
// never retries, so one failed cycle publishes nothing.
func (p *Publisher) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()

	// Publish once immediately rather than waiting a full interval
	p.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

// Close disconnects from the broker
func (p *Publisher) Close() {
	p.mqtt.Disconnect(disconnectQuiesce)
}

func (p *Publisher) poll(ctx context.Context) {
	start := time.Now()
	state, err := p.client.GetSensorsState(ctx)
	logging.LogPoll(p.client.Host, time.Since(start), err)
	if err != nil {
		return
	}

	payloads, err := statePayloads(p.opts.TopicPrefix, state)
	if err != nil {
		p.log.Error("Failed to encode sensor state", zap.Error(err))
		return
	}

	for topic, payload := range payloads {
		token := p.mqtt.Publish(topic, 0, false, payload)
		token.Wait()
		if token.Error() != nil {
			p.log.Warn("Publish failed",
				zap.String("topic", topic),
				zap.Error(token.Error()),
			)
			continue
		}
		logging.LogPublish(topic, len(payload))
	}
}

// statePayloads builds the topic → payload map for one sensor state.
// Disconnected probes publish no per-metric message; their absence is
// visible in the JSON state instead.
func statePayloads(prefix string, state *bopi.SensorsState) (map[string][]byte, error) {
	full, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}

	payloads := map[string][]byte{
		prefix + "/sensors":             full,
		prefix + "/sensors/phvalue":     formatMetric(state.PhValue),
		prefix + "/sensors/redoxvalue":  formatMetric(state.RedoxValue),
		prefix + "/sensors/boxhumidity": formatMetric(state.BoxHumidity),
		prefix + "/sensors/uptime":      []byte(strconv.FormatInt(state.Uptime, 10)),
	}

	if state.WaterTemperature != nil {
		payloads[prefix+"/sensors/watertemperature"] = formatMetric(*state.WaterTemperature)
	}
	if state.BoxTemperature != nil {
		payloads[prefix+"/sensors/boxtemperature"] = formatMetric(*state.BoxTemperature)
	}

	return payloads, nil
}

func formatMetric(value float64) []byte {
	return []byte(strconv.FormatFloat(value, 'f', -1, 64))
}
