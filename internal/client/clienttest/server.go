package clienttest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/oshokin/mission-console/internal/domain/alarm"
	"github.com/oshokin/mission-console/internal/domain/command"
	"github.com/oshokin/mission-console/internal/domain/mdb"
	"github.com/oshokin/mission-console/internal/domain/system"
)

// Server is a fake server holding its state in memory.
type Server struct {
	// srv serves the fake over loopback HTTP.
	srv *httptest.Server
	// upgrader accepts WebSocket connections.
	upgrader websocket.Upgrader

	// mu guards everything below.
	mu sync.Mutex
	// username and password are required when username is set.
	username, password string
	// alarms is returned by the active alarms route.
	alarms []alarm.Alarm
	// commands is returned by the command history route, newest first.
	commands []command.Entry
	// threads is returned by the threads route.
	threads []system.ThreadInfo
	// parameters maps qualified names to definitions.
	parameters map[string]*mdb.Parameter
	// objects maps "bucket/object" to content.
	objects map[string][]byte
	// users lists known account names.
	users map[string]*system.UserInfo
	// patches records user patches by account name.
	patches map[string][]system.UserPatch
	// failures forces a status for "METHOD /path" requests.
	failures map[string]int
	// rejected lists topics whose subscriptions are refused.
	rejected map[string]bool
	// requests records "METHOD /path" of every REST request.
	requests []string
	// subscribers are the accepted subscriptions.
	subscribers []*subscriber
	// nextCall numbers accepted calls.
	nextCall int
}

// subscriber is one accepted WebSocket call.
type subscriber struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	topic   string
	call    int
	seq     int
}

// frame is the WebSocket message envelope in both directions.
type frame struct {
	Type    string          `json:"type"`
	ID      int             `json:"id,omitempty"`
	Call    int             `json:"call,omitempty"`
	Seq     int             `json:"seq,omitempty"`
	Options json.RawMessage `json:"options,omitempty"`
	Data    any             `json:"data,omitempty"`
}

// NewServer starts a fake server. Close it when done.
func NewServer() *Server {
	s := &Server{
		parameters: make(map[string]*mdb.Parameter),
		objects:    make(map[string][]byte),
		users:      make(map[string]*system.UserInfo),
		patches:    make(map[string][]system.UserPatch),
		failures:   make(map[string]int),
		rejected:   make(map[string]bool),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/processors/{instance}/{processor}/alarms", s.listAlarms)
	mux.HandleFunc("GET /api/archive/{instance}/commands", s.listCommands)
	mux.HandleFunc("GET /api/mdb/{instance}/parameters/{name...}", s.getParameter)
	mux.HandleFunc("GET /api/users/{name}", s.getUser)
	mux.HandleFunc("PATCH /api/users/{name}", s.editUser)
	mux.HandleFunc("GET /api/threads", s.listThreads)
	mux.HandleFunc("GET /api/storage/buckets/{bucket}/objects/{object...}", s.getObject)
	mux.HandleFunc("POST /api/storage/buckets/{bucket}/objects/{object...}", s.uploadObject)
	mux.HandleFunc("DELETE /api/storage/buckets/{bucket}/objects/{object...}", s.deleteObject)
	mux.HandleFunc("GET /api/websocket", s.websocket)

	s.srv = httptest.NewServer(s.middleware(mux))

	return s
}

// URL returns the base URL of the fake.
func (s *Server) URL() string {
	return s.srv.URL
}

// Close drops every subscription and stops the fake.
func (s *Server) Close() {
	s.DropSubscribers()
	s.srv.Close()
}

// RequireBasicAuth makes every route demand the given credentials.
func (s *Server) RequireBasicAuth(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.username, s.password = username, password
}

// SetAlarms replaces the active alarms.
func (s *Server) SetAlarms(alarms ...alarm.Alarm) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alarms = slices.Clone(alarms)
}

// SetCommands replaces the archived commands, newest first.
func (s *Server) SetCommands(entries ...command.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commands = slices.Clone(entries)
}

// SetThreads replaces the thread dump.
func (s *Server) SetThreads(threads ...system.ThreadInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.threads = slices.Clone(threads)
}

// AddParameter registers a parameter definition.
func (s *Server) AddParameter(p *mdb.Parameter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.parameters[p.QualifiedName] = p
}

// AddUser registers an account.
func (s *Server) AddUser(user system.UserInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.Name] = &user
}

// Patches returns the patches applied to an account.
func (s *Server) Patches(name string) []system.UserPatch {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.patches[name])
}

// PutObject stores an object.
func (s *Server) PutObject(bucket, name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[bucket+"/"+name] = slices.Clone(data)
}

// Object returns a stored object.
func (s *Server) Object(bucket, name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.objects[bucket+"/"+name]

	return data, ok
}

// Fail makes requests matching method and path answer with status.
func (s *Server) Fail(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[method+" "+path] = status
}

// Recover undoes Fail for method and path.
func (s *Server) Recover(method, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.failures, method+" "+path)
}

// Reject makes subscriptions to topic fail.
func (s *Server) Reject(topic string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rejected[topic] = true
}

// Requests returns "METHOD /path" of every REST request served so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.requests)
}

// Subscribers returns the number of live subscriptions to topic.
func (s *Server) Subscribers(topic string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0

	for _, sub := range s.subscribers {
		if sub.topic == topic {
			n++
		}
	}

	return n
}

// Publish sends data to every subscriber of topic and returns how many
// subscribers received it.
func (s *Server) Publish(topic string, data any) int {
	s.mu.Lock()
	subscribers := slices.Clone(s.subscribers)
	s.mu.Unlock()

	delivered := 0

	for _, sub := range subscribers {
		if sub.topic != topic {
			continue
		}

		sub.writeMu.Lock()
		sub.seq++
		err := sub.conn.WriteJSON(frame{Type: topic, Call: sub.call, Seq: sub.seq, Data: data})
		sub.writeMu.Unlock()

		if err == nil {
			delivered++
		}
	}

	return delivered
}

// DropSubscribers closes every WebSocket connection without a close handshake.
func (s *Server) DropSubscribers() {
	s.mu.Lock()
	subscribers := s.subscribers
	s.subscribers = nil
	s.mu.Unlock()

	for _, sub := range subscribers {
		_ = sub.conn.Close()
	}
}

func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path

		s.mu.Lock()
		status, failing := s.failures[key]
		username, password := s.username, s.password

		if r.URL.Path != "/api/websocket" {
			s.requests = append(s.requests, key)
		}
		s.mu.Unlock()

		if username != "" {
			u, p, ok := r.BasicAuth()
			if !ok || u != username || p != password {
				writeError(w, http.StatusUnauthorized, "UnauthorizedException", "authentication required")

				return
			}
		}

		if failing {
			writeError(w, status, "ForcedFailure", "forced failure")

			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) listAlarms(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	body := map[string]any{"alarms": s.alarms}
	s.mu.Unlock()

	writeJSON(w, body)
}

func (s *Server) listCommands(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	commands := slices.Clone(s.commands)
	s.mu.Unlock()

	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit < len(commands) {
		commands = commands[:limit]
	}

	writeJSON(w, map[string]any{"commands": commands})
}

func (s *Server) getParameter(w http.ResponseWriter, r *http.Request) {
	name := "/" + r.PathValue("name")

	s.mu.Lock()
	p, ok := s.parameters[name]
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "NotFoundException", "no parameter named "+name)

		return
	}

	writeJSON(w, p)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	user, ok := s.users[r.PathValue("name")]
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "NotFoundException", "no such user")

		return
	}

	writeJSON(w, user)
}

func (s *Server) editUser(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var patch system.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequestException", err.Error())

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[name]
	if !ok {
		writeError(w, http.StatusNotFound, "NotFoundException", "no such user")

		return
	}

	s.patches[name] = append(s.patches[name], patch)

	if patch.DisplayName != nil {
		user.DisplayName = *patch.DisplayName
	}

	if patch.Email != nil {
		user.Email = *patch.Email
	}

	if patch.Active != nil {
		user.Active = *patch.Active
	}

	writeJSON(w, user)
}

func (s *Server) listThreads(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	body := map[string]any{"threads": s.threads}
	s.mu.Unlock()

	writeJSON(w, body)
}

func (s *Server) getObject(w http.ResponseWriter, r *http.Request) {
	data, ok := s.Object(r.PathValue("bucket"), r.PathValue("object"))
	if !ok {
		writeError(w, http.StatusNotFound, "NotFoundException", "no such object")

		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(data)
}

func (s *Server) uploadObject(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BadRequestException", err.Error())

		return
	}

	s.PutObject(r.PathValue("bucket"), r.PathValue("object"), data)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) deleteObject(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("bucket") + "/" + r.PathValue("object")

	s.mu.Lock()
	_, ok := s.objects[key]
	delete(s.objects, key)
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "NotFoundException", "no such object")

		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) websocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	sub := &subscriber{conn: conn}

	defer func() {
		s.remove(sub)
		_ = conn.Close()
	}()

	for {
		var request frame
		if err := conn.ReadJSON(&request); err != nil {
			return
		}

		if request.Type == "cancel" {
			s.remove(sub)

			continue
		}

		s.mu.Lock()
		rejected := s.rejected[request.Type]
		s.nextCall++
		call := s.nextCall
		s.mu.Unlock()

		reply := map[string]any{"replyTo": request.ID}
		if rejected {
			reply["exception"] = map[string]any{
				"code": http.StatusForbidden,
				"type": "ForbiddenException",
				"msg":  "subscription refused",
			}
		}

		sub.writeMu.Lock()
		err := conn.WriteJSON(frame{Type: "reply", Call: call, Data: reply})
		sub.writeMu.Unlock()

		if err != nil {
			return
		}

		if rejected {
			continue
		}

		s.mu.Lock()
		sub.topic = request.Type
		sub.call = call
		s.subscribers = append(s.subscribers, sub)
		s.mu.Unlock()
	}
}

func (s *Server) remove(sub *subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers = slices.DeleteFunc(s.subscribers, func(other *subscriber) bool {
		return other == sub
	})
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code": status,
		"type": kind,
		"msg":  msg,
	})
}
