package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"island-discovery/internal/protocol"
	"island-discovery/pkg/islands"
	"island-discovery/pkg/terrain"
)

// errUnknownMessage is returned for message types the server does not handle.
var errUnknownMessage = errors.New("unknown message type")

// Handlers processes incoming messages.
type Handlers struct {
	hub *Hub
}

// NewHandlers creates a new handler set.
func NewHandlers(hub *Hub) *Handlers {
	return &Handlers{hub: hub}
}

// Handle routes a message to the appropriate handler.
func (h *Handlers) Handle(client *Client, msg *protocol.Message) {
	var err error

	switch msg.Type {
	case protocol.TypeGenerate:
		err = h.handleGenerate(client, msg)
	case protocol.TypeRecolor:
		err = h.handleRecolor(client, msg)
	case protocol.TypeListRuns:
		err = h.handleListRuns(client, msg)
	default:
		err = fmt.Errorf("%w: %q", errUnknownMessage, msg.Type)
	}

	if err != nil {
		h.sendError(client, msg.ID, err)
	}
}

// handleGenerate builds and discovers a new grid for the client's session.
func (h *Handlers) handleGenerate(client *Client, msg *protocol.Message) error {
	var payload protocol.GeneratePayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}

	cfg := h.hub.server.cfg
	opts := terrain.GeneratorOptions{
		Size:      payload.Size,
		LandRatio: payload.LandRatio,
		Seed:      payload.Seed,
	}
	if opts.Size == 0 {
		opts.Size = cfg.Size
	}
	if opts.LandRatio == 0 {
		opts.LandRatio = cfg.LandRatio
	}
	if opts.Size > cfg.MaxSize {
		return fmt.Errorf("size %d above limit %d: %w", opts.Size, cfg.MaxSize, terrain.ErrInvalidSize)
	}

	state, err := client.Session.Generate(opts)
	if err != nil {
		return err
	}

	run, err := h.hub.server.db.RecordRun(state.Seed, state.Size, state.LandRatio, state.IslandCount, state.DiscoveryMillis)
	if err != nil {
		log.Printf("Failed to record run: %v", err)
	} else {
		client.Session.SetRunID(run.ID)
		state.RunID = run.ID
	}

	log.Printf("Session %s: %dx%d grid (seed %d, ratio %d), %d islands in %.2fms",
		client.Session.ID, state.Size, state.Size, state.Seed, state.LandRatio, state.IslandCount, state.DiscoveryMillis)

	h.reply(client, msg.ID, protocol.TypeGridState, state)
	return nil
}

// handleRecolor repaints one island of the client's grid.
func (h *Handlers) handleRecolor(client *Client, msg *protocol.Message) error {
	var payload protocol.RecolorPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}

	c, err := terrain.ParseColor(payload.Color)
	if err != nil {
		return &colorError{err}
	}

	state, err := client.Session.Recolor(payload.Row, payload.Col, c)
	if err != nil {
		return err
	}

	if runID := client.Session.RunID(); runID != "" {
		if err := h.hub.server.db.RecordRecolor(runID, payload.Row, payload.Col, string(c)); err != nil {
			log.Printf("Failed to record recolor: %v", err)
		}
	}

	h.reply(client, msg.ID, protocol.TypeGridState, state)
	return nil
}

// handleListRuns sends the most recent runs from the history.
func (h *Handlers) handleListRuns(client *Client, msg *protocol.Message) error {
	var payload protocol.ListRunsPayload
	if len(msg.Payload) > 0 {
		if err := msg.ParsePayload(&payload); err != nil {
			return err
		}
	}

	runs, err := h.hub.server.db.ListRuns(payload.Limit)
	if err != nil {
		return err
	}

	h.reply(client, msg.ID, protocol.TypeRunList, protocol.RunListPayload{Runs: runInfos(runs)})
	return nil
}

// reply sends a response that carries the ID of the request it answers.
func (h *Handlers) reply(client *Client, msgID string, msgType protocol.MessageType, payload interface{}) {
	resp, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		log.Printf("Failed to build %s message: %v", msgType, err)
		return
	}
	resp.ID = msgID
	client.Send(resp)
}

// colorError marks a malformed colour in a request.
type colorError struct{ err error }

func (e *colorError) Error() string { return e.err.Error() }
func (e *colorError) Unwrap() error { return e.err }

// errorCode maps an error to the code sent to the client.
func errorCode(err error) protocol.ErrorCode {
	var ce *colorError
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	switch {
	case errors.As(err, &se), errors.As(err, &ute):
		return protocol.ErrCodeInvalidMessage
	case errors.As(err, &ce):
		return protocol.ErrCodeInvalidColor
	case errors.Is(err, terrain.ErrOutOfBounds):
		return protocol.ErrCodeOutOfBounds
	case errors.Is(err, terrain.ErrInvalidSize), errors.Is(err, terrain.ErrInvalidRatio):
		return protocol.ErrCodeInvalidSettings
	case errors.Is(err, ErrNoGrid):
		return protocol.ErrCodeNoGrid
	case errors.Is(err, islands.ErrColorSpaceExhausted):
		return protocol.ErrCodeColorsExhausted
	case errors.Is(err, errUnknownMessage):
		return protocol.ErrCodeInvalidMessage
	default:
		return protocol.ErrCodeInternalError
	}
}

// sendError sends an error message to a client.
func (h *Handlers) sendError(client *Client, msgID string, err error) {
	payload := protocol.ErrorPayload{
		Code:    errorCode(err),
		Message: err.Error(),
	}
	msg, _ := protocol.NewMessage(protocol.TypeError, payload)
	msg.ID = msgID
	client.Send(msg)
}
