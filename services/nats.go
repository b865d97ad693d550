package services

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/quinbingo/quinbingo-backend/models"
	"github.com/quinbingo/quinbingo-backend/utils/logger"
)

// StateSubject is the NATS subject game updates are mirrored to.
const StateSubject = "quinbingo.state"

// NATSPublisher mirrors every game update to a NATS subject, for
// integrations that want the feed without holding a websocket open.
// It is optional: the process runs fine without a broker.
type NATSPublisher struct {
	nc *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	logger.Infof("[nats] connected to %s", url)
	return &NATSPublisher{nc: nc}, nil
}

func (p *NATSPublisher) Publish(eventName string, state *models.GameState) {
	b, err := json.Marshal(event{Event: eventName, Data: state})
	if err != nil {
		logger.Errorf("[nats] marshal state: %v", err)
		return
	}
	if err := p.nc.Publish(StateSubject, b); err != nil {
		logger.Errorf("[nats] publish: %v", err)
	}
}

func (p *NATSPublisher) Close() {
	p.nc.Close()
}

// MultiBroadcaster fans one publish out to several broadcasters in
// order, so the websocket hub and the NATS mirror see every mutation
// in the same sequence.
type MultiBroadcaster []interface {
	Publish(eventName string, state *models.GameState)
}

func (m MultiBroadcaster) Publish(eventName string, state *models.GameState) {
	for _, b := range m {
		b.Publish(eventName, state)
	}
}
