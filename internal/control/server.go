// HTTP control surface for a running playback.
package control

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"rocketsim/internal/sim"
)

// Server exposes playback state and controls over HTTP. All responses are
// JSON; there is no UI.
type Server struct {
	Playback *sim.Playback
}

func NewServer(p *sim.Playback) *Server {
	return &Server{Playback: p}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/pause", s.handlePause)
	mux.HandleFunc("/resume", s.handleResume)
	mux.HandleFunc("/stop", s.handleStop)
	mux.HandleFunc("/speed", s.handleSpeed)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.routes()}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()
	return srv.ListenAndServe()
}

// statusResponse is the /status payload.
type statusResponse struct {
	Status       sim.PlaybackStatus `json:"status"`
	CurrentTimeS float64            `json:"current_time_s"`
	TotalTimeS   float64            `json:"total_time_s"`
	Progress     float64            `json:"progress"`
	Speed        float64            `json:"speed"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(statusResponse{
		Status:       s.Playback.Status(),
		CurrentTimeS: s.Playback.CurrentTime(),
		TotalTimeS:   s.Playback.TotalTime(),
		Progress:     s.Playback.Progress(),
		Speed:        s.Playback.Speed(),
	})
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	s.Playback.Pause()
	s.writeStatus(w)
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	s.Playback.Resume()
	s.writeStatus(w)
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	s.Playback.Stop()
	s.writeStatus(w)
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	factor, err := strconv.ParseFloat(r.URL.Query().Get("factor"), 64)
	if err != nil || factor <= 0 {
		http.Error(w, "factor must be a positive number", http.StatusBadRequest)
		return
	}
	s.Playback.SetSpeed(factor)
	s.writeStatus(w)
}

func (s *Server) writeStatus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"status": s.Playback.Status()})
}
