package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"briscola-game/internal/cpu"
	"briscola-game/internal/game"
	"briscola-game/internal/protocol"

	"github.com/sirupsen/logrus"
)

// clientMessage pairs a decoded message with the client that sent it.
type clientMessage struct {
	client  *Client
	message protocol.Message
}

const maxNameLength = 20

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithGameOptions passes options to every game the hub creates.
func WithGameOptions(opts ...game.Option) HubOption {
	return func(h *Hub) {
		h.gameOpts = append(h.gameOpts, opts...)
	}
}

// Hub owns the websocket clients and the sessions they play.
type Hub struct {
	clients        map[*Client]bool
	sessions       map[string]*Session
	clientSession  map[*Client]*Session
	processMessage chan clientMessage
	register       chan *Client
	unregister     chan *Client
	clientMu       sync.RWMutex
	sessionMu      sync.RWMutex

	defaultLevel cpu.Level
	gameOpts     []game.Option
	log          logrus.FieldLogger
}

// NewHub creates a hub whose games default to the given CPU level.
func NewHub(defaultLevel cpu.Level, logger logrus.FieldLogger, opts ...HubOption) *Hub {
	h := &Hub{
		clients:        make(map[*Client]bool),
		sessions:       make(map[string]*Session),
		clientSession:  make(map[*Client]*Session),
		processMessage: make(chan clientMessage),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		defaultLevel:   defaultLevel,
		log:            logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run is the hub's main loop. It stops every session when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.stopAll()
			return

		case client := <-h.register:
			h.clientMu.Lock()
			h.clients[client] = true
			h.clientMu.Unlock()
			h.log.WithFields(logrus.Fields{"client": client.ID, "remote": client.conn.RemoteAddr().String()}).Info("Client connected")

		case client := <-h.unregister:
			h.clientMu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.close()
			}
			h.clientMu.Unlock()
			h.endSession(client)
			h.log.WithField("client", client.ID).Info("Client disconnected")

		case cm := <-h.processMessage:
			h.handleMessage(ctx, cm.client, cm.message)
		}
	}
}

func (h *Hub) handleMessage(ctx context.Context, client *Client, msg protocol.Message) {
	switch msg.Type {
	case protocol.TypePing:
		h.sendTo(client, protocol.TypePong, nil)

	case protocol.TypeNewGame:
		var payload protocol.NewGamePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			h.sendError(client, "Invalid new_game payload.")
			return
		}
		if err := h.startSession(ctx, client, payload); err != nil {
			h.log.WithError(err).WithField("client", client.ID).Warn("Could not start game")
			h.sendError(client, err.Error())
		}

	case protocol.TypePlayCard:
		var payload protocol.PlayCardPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			h.sendError(client, "Invalid play_card payload.")
			return
		}
		card, err := payload.Card()
		if err != nil {
			h.sendError(client, err.Error())
			return
		}
		h.sessionMu.RLock()
		session, ok := h.clientSession[client]
		h.sessionMu.RUnlock()
		if !ok {
			h.sendError(client, "No game in progress.")
			return
		}
		if err := session.Submit(card); err != nil {
			h.sendError(client, err.Error())
		}

	default:
		h.log.WithFields(logrus.Fields{"client": client.ID, "type": msg.Type}).Warn("Unknown message type")
		h.sendError(client, fmt.Sprintf("Unknown message type %q.", msg.Type))
	}
}

// startSession replaces any running game of the client with a new one.
func (h *Hub) startSession(ctx context.Context, client *Client, payload protocol.NewGamePayload) error {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		name = "Player"
	}
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}
	client.Name = name

	level := h.defaultLevel
	if payload.Difficulty != "" {
		parsed, err := cpu.ParseLevel(payload.Difficulty)
		if err != nil {
			return err
		}
		level = parsed
	}

	h.endSession(client)
	session := NewSession(name, level, client.Send, h.log.WithField("client", client.ID), h.gameOpts...)
	if err := session.Start(ctx); err != nil {
		return err
	}

	h.sessionMu.Lock()
	h.sessions[session.ID] = session
	h.clientSession[client] = session
	h.sessionMu.Unlock()

	h.log.WithFields(logrus.Fields{
		"client":     client.ID,
		"session":    session.ID,
		"difficulty": level.String(),
	}).Info("Game started")
	return nil
}

func (h *Hub) endSession(client *Client) {
	h.sessionMu.Lock()
	session, ok := h.clientSession[client]
	if ok {
		delete(h.clientSession, client)
		delete(h.sessions, session.ID)
	}
	h.sessionMu.Unlock()
	if ok {
		session.Stop()
	}
}

func (h *Hub) stopAll() {
	h.sessionMu.Lock()
	defer h.sessionMu.Unlock()
	for id, session := range h.sessions {
		session.Stop()
		delete(h.sessions, id)
	}
	clear(h.clientSession)
}

// Sessions returns the status of every running session ordered by ID.
func (h *Hub) Sessions() []SessionStatus {
	h.sessionMu.RLock()
	statuses := make([]SessionStatus, 0, len(h.sessions))
	for _, s := range h.sessions {
		statuses = append(statuses, s.Status())
	}
	h.sessionMu.RUnlock()
	slices.SortFunc(statuses, func(a, b SessionStatus) int { return strings.Compare(a.ID, b.ID) })
	return statuses
}

// Session returns the session with the given ID.
func (h *Hub) Session(id string) (SessionStatus, bool) {
	h.sessionMu.RLock()
	defer h.sessionMu.RUnlock()
	s, ok := h.sessions[id]
	if !ok {
		return SessionStatus{}, false
	}
	return s.Status(), true
}

func (h *Hub) sendTo(client *Client, msgType string, payload interface{}) {
	msg, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		h.log.WithError(err).WithField("type", msgType).Error("Encoding message")
		return
	}
	client.Send(msg)
}

func (h *Hub) sendError(client *Client, message string) {
	h.sendTo(client, protocol.TypeError, protocol.ErrorPayload{Message: message})
}

// errUnknownSession is returned by the API for a missing session ID.
var errUnknownSession = errors.New("unknown session")
