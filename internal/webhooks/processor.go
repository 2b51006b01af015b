// Package webhooks verifies, normalizes and relays provider delivery events.
package webhooks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"doordash-adapter/internal/events"
	"doordash-adapter/internal/metrics"
	"doordash-adapter/internal/model"
)

const ProviderName = "doordash"

var (
	// ErrInvalidSignature means the body was rejected unread.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrMalformedEvent means a verified body could not be interpreted.
	ErrMalformedEvent = errors.New("malformed event")
)

// Outcome describes a verified event and what happened when it was relayed.
type Outcome struct {
	Event    model.NormalizedEvent
	Relayed  bool
	RelayErr error
}

type Processor struct {
	Secret string
	Relay  *Relayer
	Broker events.Broker
	Log    logrus.FieldLogger
	Now    func() time.Time
}

func NewProcessor(secret string, relay *Relayer, broker events.Broker, log logrus.FieldLogger) *Processor {
	return &Processor{Secret: secret, Relay: relay, Broker: broker, Log: log, Now: time.Now}
}

// Process runs both phases for one inbound webhook. The returned error comes
// from the first phase only: ErrInvalidSignature or ErrMalformedEvent. Relay
// failures are logged and carried in the Outcome.
func (p *Processor) Process(ctx context.Context, body []byte, signature string) (Outcome, error) {
	evt, err := p.Accept(body, signature)
	if err != nil {
		return Outcome{}, err
	}
	return p.Forward(ctx, evt), nil
}

// Accept verifies the signature and builds the normalized event. Nothing in
// body is parsed unless the signature matches.
func (p *Processor) Accept(body []byte, signature string) (model.NormalizedEvent, error) {
	if !VerifyHMAC(p.Secret, body, signature) {
		metrics.InboundWebhooks.WithLabelValues("unknown", "rejected").Inc()
		p.Log.Warn("invalid webhook signature")
		return model.NormalizedEvent{}, ErrInvalidSignature
	}

	var raw model.WebhookEvent
	if err := json.Unmarshal(body, &raw); err != nil {
		metrics.InboundWebhooks.WithLabelValues("unknown", "error").Inc()
		return model.NormalizedEvent{}, errors.Wrap(ErrMalformedEvent, err.Error())
	}
	payload, err := Normalize(raw)
	if err != nil {
		metrics.InboundWebhooks.WithLabelValues(eventLabel(raw.EventType), "error").Inc()
		return model.NormalizedEvent{}, errors.Wrap(ErrMalformedEvent, err.Error())
	}
	metrics.InboundWebhooks.WithLabelValues(eventLabel(raw.EventType), "accepted").Inc()
	p.Log.WithField("event_type", raw.EventType).Info("webhook received")

	eventID := raw.EventID
	if len(eventID) == 0 {
		eventID = json.RawMessage("null")
	}
	return model.NormalizedEvent{
		Provider:  ProviderName,
		EventType: raw.EventType,
		EventID:   eventID,
		Payload:   payload,
		Timestamp: model.Timestamp(p.Now()),
	}, nil
}

// Forward relays evt once and publishes it to live subscribers. It has no
// error return: the provider's response is already decided.
func (p *Processor) Forward(ctx context.Context, evt model.NormalizedEvent) Outcome {
	out := Outcome{Event: evt}
	log := p.Log.WithField("event_type", evt.EventType)
	if p.Relay != nil {
		// the relay outlives a provider that hangs up early; its own timeout bounds it
		if err := p.Relay.Forward(context.WithoutCancel(ctx), evt); err != nil {
			out.RelayErr = err
			log.WithError(err).Error("failed to forward webhook")
		} else {
			out.Relayed = true
			log.Info("webhook forwarded")
		}
	}
	if p.Broker != nil {
		if id := OrderID(evt.Payload); id != "" {
			p.Broker.Publish(id, evt)
		}
	}
	return out
}
