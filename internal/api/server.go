// Package api is the thinnest possible HTTP/WS exerciser of the store,
// per SPEC_FULL.md §5 Non-goals: no rendering, no view logic. Handlers
// build typed Action values and dispatch them; the websocket Hub mirrors
// every post-reduce RootState to connected clients.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/goldbarth/arcflow/internal/collaborators/player"
	"github.com/goldbarth/arcflow/internal/core/store"
	"github.com/goldbarth/arcflow/internal/core/types"
)

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Hub broadcasts RootState snapshots to every connected UI client.
type Hub struct {
	mu       sync.Mutex
	conns    map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		conns:    make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

func (h *Hub) Send(state types.RootState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		if err := c.WriteJSON(state); err != nil {
			c.Close()
			delete(h.conns, c)
		}
	}
}

// Server routes HTTP/WS requests onto a Store and a player bridge.
type Server struct {
	store    *store.Store
	hub      *Hub
	bridge   *player.Bridge
	upgrader websocket.Upgrader
}

func NewServer(s *store.Store, hub *Hub, bridge *player.Bridge) *Server {
	return &Server{
		store:    s,
		hub:      hub,
		bridge:   bridge,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

func (s *Server) Register(mux *http.ServeMux) {
	routes := map[string]http.HandlerFunc{
		"/api/state":             s.handleState,
		"/api/playlists/create":  s.handleCreatePlaylist,
		"/api/playlists/select":  s.handleSelectPlaylist,
		"/api/videos/add":        s.handleAddVideo,
		"/api/videos/select":     s.handleSelectVideo,
		"/api/sort":              s.handleSortChanged,
		"/api/next":              s.handleNext,
		"/api/previous":          s.handlePrevious,
		"/api/shuffle":           s.handleShuffle,
		"/api/repeat":            s.handleRepeat,
		"/api/undo":              s.handleUndo,
		"/api/redo":              s.handleRedo,
		"/api/notifications/ack": s.handleDismissNotification,
		"/api/export":            s.handleExport,
		"/api/import":            s.handleImport,
	}
	for path, h := range routes {
		mux.HandleFunc(path, cors(h))
	}
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/ws/player", s.handlePlayerWS)
}

func cors(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}

func reply(w http.ResponseWriter, code int, r response) {
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(r)
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		reply(w, http.StatusMethodNotAllowed, response{Success: false, Message: "Method not allowed"})
		return false
	}
	return true
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	reply(w, http.StatusOK, response{Success: true, Data: s.store.State()})
}

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		reply(w, http.StatusBadRequest, response{Success: false, Message: "Invalid request body"})
		return
	}
	s.store.Dispatch(types.CreatePlaylist{Name: body.Name, Description: body.Description})
	reply(w, http.StatusOK, response{Success: true, Message: "Playlist creation requested"})
}

func (s *Server) handleSelectPlaylist(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		reply(w, http.StatusBadRequest, response{Success: false, Message: "Missing id parameter"})
		return
	}
	s.store.Dispatch(types.SelectPlaylist{PlaylistID: id})
	reply(w, http.StatusOK, response{Success: true, Message: "Playlist selected"})
}

func (s *Server) handleAddVideo(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var body struct {
		PlaylistID string `json:"playlistId"`
		URL        string `json:"url"`
		Title      string `json:"title"`
		Paid       bool   `json:"paid"`
		AddedBy    string `json:"addedBy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		reply(w, http.StatusBadRequest, response{Success: false, Message: "Invalid request body"})
		return
	}
	if body.PlaylistID == "" || body.URL == "" {
		reply(w, http.StatusBadRequest, response{Success: false, Message: "Missing playlistId or url"})
		return
	}
	s.store.Dispatch(types.AddVideo{
		PlaylistID: body.PlaylistID,
		YoutubeID:  body.URL,
		Title:      body.Title,
		Paid:       body.Paid,
		AddedBy:    body.AddedBy,
	})
	reply(w, http.StatusOK, response{Success: true, Message: "Video add requested"})
}

func (s *Server) handleSelectVideo(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	index, err := strconv.Atoi(r.URL.Query().Get("index"))
	if err != nil || index < 0 {
		reply(w, http.StatusBadRequest, response{Success: false, Message: "Invalid index parameter"})
		return
	}
	autoplay := r.URL.Query().Get("autoplay") == "true"
	s.store.Dispatch(types.SelectVideo{Index: index, Autoplay: autoplay})
	reply(w, http.StatusOK, response{Success: true, Message: "Video selected"})
}

func (s *Server) handleSortChanged(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	oldIndex, err1 := strconv.Atoi(r.URL.Query().Get("oldIndex"))
	newIndex, err2 := strconv.Atoi(r.URL.Query().Get("newIndex"))
	if err1 != nil || err2 != nil || oldIndex < 0 || newIndex < 0 {
		reply(w, http.StatusBadRequest, response{Success: false, Message: "Invalid oldIndex/newIndex parameters"})
		return
	}
	s.store.Dispatch(types.SortChanged{OldIndex: oldIndex, NewIndex: newIndex})
	reply(w, http.StatusOK, response{Success: true, Message: "Sort order changed"})
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	s.store.Dispatch(types.NextRequested{})
	reply(w, http.StatusOK, response{Success: true, Message: "Advanced to next track"})
}

func (s *Server) handlePrevious(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	s.store.Dispatch(types.PrevRequested{})
	reply(w, http.StatusOK, response{Success: true, Message: "Returned to previous track"})
}

func (s *Server) handleShuffle(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	enabled := r.URL.Query().Get("enabled") == "true"
	var seed *int64
	if raw := r.URL.Query().Get("seed"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			reply(w, http.StatusBadRequest, response{Success: false, Message: "Invalid seed parameter"})
			return
		}
		seed = &v
	}
	s.store.Dispatch(types.ShuffleSet{Enabled: enabled, Seed: seed})
	reply(w, http.StatusOK, response{Success: true, Message: "Shuffle updated"})
}

func (s *Server) handleRepeat(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var mode types.RepeatMode
	switch r.URL.Query().Get("mode") {
	case "all":
		mode = types.RepeatAll
	case "one":
		mode = types.RepeatOne
	case "off", "":
		mode = types.RepeatOff
	default:
		reply(w, http.StatusBadRequest, response{Success: false, Message: "Invalid mode parameter"})
		return
	}
	s.store.Dispatch(types.RepeatSet{Mode: mode})
	reply(w, http.StatusOK, response{Success: true, Message: "Repeat mode updated"})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	s.store.Dispatch(types.UndoRequested{})
	reply(w, http.StatusOK, response{Success: true, Message: "Undo requested"})
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	s.store.Dispatch(types.RedoRequested{})
	reply(w, http.StatusOK, response{Success: true, Message: "Redo requested"})
}

func (s *Server) handleDismissNotification(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	id := r.URL.Query().Get("correlationId")
	if id == "" {
		reply(w, http.StatusBadRequest, response{Success: false, Message: "Missing correlationId parameter"})
		return
	}
	s.store.Dispatch(types.DismissNotification{CorrelationID: id})
	reply(w, http.StatusOK, response{Success: true, Message: "Notification dismissed"})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	s.store.Dispatch(types.ExportRequested{})
	reply(w, http.StatusOK, response{Success: true, Message: "Export requested"})
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		reply(w, http.StatusBadRequest, response{Success: false, Message: "Failed to read request body"})
		return
	}
	s.store.Dispatch(types.ImportRequested{JSONText: string(data)})
	reply(w, http.StatusOK, response{Success: true, Message: "Import requested"})
}

// handleWS serves the UI-mirroring connection: every client receives the
// current snapshot on connect, then every subsequent broadcast from Hub.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.hub.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.hub.mu.Lock()
	s.hub.conns[conn] = struct{}{}
	s.hub.mu.Unlock()

	conn.WriteJSON(s.store.State())

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.hub.mu.Lock()
			delete(s.hub.conns, conn)
			s.hub.mu.Unlock()
			conn.Close()
			return
		}
	}
}

// handlePlayerWS attaches the browser iframe bridge connection: outbound
// load/play/pause/destroy commands, inbound onStateChanged/onEnded events.
func (s *Server) handlePlayerWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.bridge.Attach(conn)
}

// BroadcastLoop registers a listener on s that mirrors every post-reduce
// state onto hub, then returns at once. The listener id is not kept, so the
// listener stays registered for the store's lifetime.
func BroadcastLoop(s *store.Store, hub *Hub) {
	s.OnStateChanged(func(state types.RootState) {
		hub.Send(state)
	})
}
