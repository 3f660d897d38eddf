// Package player is the Player collaborator interface from spec.md §6,
// plus a websocket-bridge implementation that reuses the teacher's
// gorilla/websocket Hub connection bidirectionally: outbound load/play/
// pause/destroy frames, inbound onStateChanged/onEnded callbacks from the
// embedded YouTube iframe API running in the browser.
package player

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Player is the narrow interface the core consumes.
type Player interface {
	Load(videoID string, autoplay bool) error
	Play() error
	Pause() error
	Destroy() error
}

// StateChangedFunc and EndedFunc are the callbacks spec.md §6 describes
// the Player collaborator as emitting; the caller (internal/api) wires
// these to translate into PlayerStateChanged/VideoEnded actions.
type StateChangedFunc func(ytStateCode int, videoID string)
type EndedFunc func()

type command struct {
	Type     string `json:"type"`
	VideoID  string `json:"videoId,omitempty"`
	Autoplay bool   `json:"autoplay,omitempty"`
}

type inboundEvent struct {
	Type        string `json:"type"`
	YTStateCode int    `json:"ytStateCode,omitempty"`
	VideoID     string `json:"videoId,omitempty"`
}

// Bridge is a websocket-backed Player. A single connection is expected to
// represent the browser tab hosting the iframe player; if no connection is
// attached, calls are no-ops (mirrors the teacher's best-effort broadcast).
type Bridge struct {
	mu       sync.Mutex
	conn     *websocket.Conn
	log      zerolog.Logger
	onState  StateChangedFunc
	onEnded  EndedFunc
}

func NewBridge(log zerolog.Logger) *Bridge {
	return &Bridge{log: log.With().Str("component", "player").Logger()}
}

// OnStateChanged registers the callback invoked on inbound state frames.
func (b *Bridge) OnStateChanged(fn StateChangedFunc) { b.onState = fn }

// OnEnded registers the callback invoked on inbound ended frames.
func (b *Bridge) OnEnded(fn EndedFunc) { b.onEnded = fn }

// Attach binds the active browser connection and starts its read loop.
// Replaces any previously attached connection.
func (b *Bridge) Attach(conn *websocket.Conn) {
	b.mu.Lock()
	b.conn = conn
	b.mu.Unlock()
	go b.readLoop(conn)
}

func (b *Bridge) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			b.mu.Lock()
			if b.conn == conn {
				b.conn = nil
			}
			b.mu.Unlock()
			return
		}
		var ev inboundEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			b.log.Warn().Err(err).Msg("malformed player event")
			continue
		}
		switch ev.Type {
		case "stateChanged":
			if b.onState != nil {
				b.onState(ev.YTStateCode, ev.VideoID)
			}
		case "ended":
			if b.onEnded != nil {
				b.onEnded()
			}
		}
	}
}

func (b *Bridge) send(c command) error {
	b.mu.Lock()
	conn := b.conn
	b.mu.Unlock()
	if conn == nil {
		return nil
	}
	return conn.WriteJSON(c)
}

func (b *Bridge) Load(videoID string, autoplay bool) error {
	return b.send(command{Type: "load", VideoID: videoID, Autoplay: autoplay})
}

func (b *Bridge) Play() error { return b.send(command{Type: "play"}) }

func (b *Bridge) Pause() error { return b.send(command{Type: "pause"}) }

func (b *Bridge) Destroy() error { return b.send(command{Type: "destroy"}) }
