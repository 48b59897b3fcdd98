package devservice

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// User is the profile served from GET /user.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Rental is the record served by the rental endpoints.
type Rental struct {
	ID         string     `json:"id"`
	Bike       string     `json:"bike"`
	User       string     `json:"user"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	StartLat   *float64   `json:"start_lat,omitempty"`
	StartLng   *float64   `json:"start_lng,omitempty"`
	EndLat     *float64   `json:"end_lat,omitempty"`
	EndLng     *float64   `json:"end_lng,omitempty"`
}

type positionBody struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type startBody struct {
	Bike json.RawMessage `json:"bike"`
	positionBody
}

// Service holds users, rentals and per-route call counts.
type Service struct {
	mu      sync.Mutex
	users   map[string]User // token -> user
	rentals map[string]*Rental
	inUse   map[string]string // bike -> rental id
	calls   map[string]int    // "METHOD /template" -> count
	now     func() time.Time
	log     *slog.Logger
}

// New returns an empty service. A nil logger discards access logs.
func New(log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{
		users:   make(map[string]User),
		rentals: make(map[string]*Rental),
		inUse:   make(map[string]string),
		calls:   make(map[string]int),
		now:     time.Now,
		log:     log,
	}
}

// AddUser accepts token as a credential for username.
func (s *Service) AddUser(token, username string) User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := User{ID: uuid.NewString(), Username: username}
	s.users[token] = u
	return u
}

// RevokeToken makes token unknown; later requests with it get 401.
func (s *Service) RevokeToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, token)
}

// Calls returns how many requests reached key, e.g. "GET /user" or
// "POST /rent/{id}/finish".
func (s *Service) Calls(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[key]
}

// TotalCalls returns the number of requests that matched any route.
func (s *Service) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

// Rental returns a copy of the rental with id.
func (s *Service) Rental(id string) (Rental, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rentals[id]
	if !ok {
		return Rental{}, false
	}
	return *r, true
}

// Router builds the HTTP handler.
func (s *Service) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.count, s.accessLog)

	api := r.NewRoute().Subrouter()
	api.Use(s.authenticate)
	api.HandleFunc("/user", s.getUser).Methods(http.MethodGet)
	api.HandleFunc("/rent", s.listRentals).Methods(http.MethodGet)
	api.HandleFunc("/rent", s.startRental).Methods(http.MethodPost)
	api.HandleFunc("/rent/{id}/finish", s.finishRental).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "no such endpoint"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "method not allowed"})
	})
	return r
}

func (s *Service) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(h, "Token ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"detail": "Authentication credentials were not provided.",
			})
			return
		}
		s.mu.Lock()
		u, ok := s.users[token]
		s.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid token."})
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), u)))
	})
}

func (s *Service) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				s.mu.Lock()
				s.calls[r.Method+" "+tpl]++
				s.mu.Unlock()
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Service) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"request_id", r.Header.Get("X-Request-ID"),
			"duration", time.Since(start),
		)
	})
}

func (s *Service) getUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFrom(r.Context()))
}

func (s *Service) listRentals(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	s.mu.Lock()
	out := make([]Rental, 0)
	for _, rent := range s.rentals {
		if rent.User == u.ID {
			out = append(out, *rent)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	writeJSON(w, http.StatusOK, out)
}

func (s *Service) startRental(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	var body startBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Malformed request."})
		return
	}
	bike := bikeID(body.Bike)
	if bike == "" {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"bike": {"This field is required."}})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inUse[bike]; busy {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Bike is already rented."})
		return
	}
	rent := &Rental{
		ID:        uuid.NewString(),
		Bike:      bike,
		User:      u.ID,
		StartedAt: s.now().UTC(),
		StartLat:  body.Lat,
		StartLng:  body.Lng,
	}
	s.rentals[rent.ID] = rent
	s.inUse[bike] = rent.ID
	writeJSON(w, http.StatusCreated, rent)
}

func (s *Service) finishRental(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	id := mux.Vars(r)["id"]
	var body positionBody
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Malformed request."})
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rent, ok := s.rentals[id]
	if !ok || rent.User != u.ID {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	if rent.FinishedAt != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Rental already finished."})
		return
	}
	now := s.now().UTC()
	rent.FinishedAt = &now
	rent.EndLat, rent.EndLng = body.Lat, body.Lng
	delete(s.inUse, rent.Bike)
	writeJSON(w, http.StatusOK, rent)
}

// bikeID accepts the bike as a JSON string or number.
func bikeID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
