// Package web exposes the goalkeeper's command surface, score, and status
// over HTTP.
package web

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/utils"
	"goji.io"
	"goji.io/pat"

	"github.com/strikerlabs/goalkeeper/keeper"
	"github.com/strikerlabs/goalkeeper/motion"
	"github.com/strikerlabs/goalkeeper/spatialmath"
)

// A Server serves the HTTP API for one controller.
type Server struct {
	controller *keeper.Controller
	logger     golog.Logger
}

// NewServer returns a server for the given controller.
func NewServer(c *keeper.Controller, logger golog.Logger) *Server {
	return &Server{controller: c, logger: logger}
}

type commandResponse struct {
	ErrorCode keeper.ErrorCode `json:"error_code"`
}

type stepRequest struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
	Open  bool    `json:"open"`
}

type keepRequest struct {
	LateralPosition float64 `json:"lateral_position"`
}

// Handler builds the API mux.
func (s *Server) Handler() http.Handler {
	mux := goji.NewMux()

	mux.HandleFunc(pat.Post("/api/reset"), s.command(s.controller.Reset))
	mux.HandleFunc(pat.Post("/api/start_keeping"), s.command(s.controller.StartKeeping))
	mux.HandleFunc(pat.Post("/api/stop_keeping"), s.command(s.controller.StopKeeping))
	mux.HandleFunc(pat.Post("/api/open"), s.command(s.controller.Open))
	mux.HandleFunc(pat.Post("/api/close"), s.command(s.controller.Close))
	mux.HandleFunc(pat.Post("/api/above_paddle"), s.command(s.controller.AbovePaddle))
	mux.HandleFunc(pat.Post("/api/retrieve_paddle"), s.command(s.controller.RetrievePaddle))
	mux.HandleFunc(pat.Post("/api/step"), s.handleStep)
	mux.HandleFunc(pat.Post("/api/keep"), s.handleKeep)
	mux.HandleFunc(pat.Get("/api/score"), s.handleScore)
	mux.HandleFunc(pat.Get("/api/status"), s.handleStatus)

	return mux
}

func (s *Server) command(run func(context.Context) (keeper.ErrorCode, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code, err := run(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		s.writeJSON(w, commandResponse{ErrorCode: code})
	}
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	var req stepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	target := motion.Pose{
		Position:    r3.Vector{X: req.X, Y: req.Y, Z: req.Z},
		Orientation: spatialmath.EulerAngles{Roll: req.Roll, Pitch: req.Pitch, Yaw: req.Yaw},
	}
	code, err := s.controller.Step(r.Context(), target, req.Open)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	s.writeJSON(w, commandResponse{ErrorCode: code})
}

func (s *Server) handleKeep(w http.ResponseWriter, r *http.Request) {
	var req keepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	code, err := s.controller.Keep(r.Context(), req.LateralPosition)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	s.writeJSON(w, commandResponse{ErrorCode: code})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.controller.Score())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.controller.CurrentStatus())
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Errorw("error writing response", "error", err)
	}
}

// Serve runs the HTTP server until the context is done.
func (s *Server) Serve(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:           listener.Addr().String(),
		ReadTimeout:    10 * time.Second,
		MaxHeaderBytes: 1 << 20,
		Handler:        s.Handler(),
	}

	utils.PanicCapturingGo(func() {
		<-ctx.Done()
		if err := httpServer.Shutdown(context.Background()); err != nil {
			s.logger.Errorw("error shutting down", "error", err)
		}
	})

	s.logger.Infow("serving", "address", listener.Addr().String())
	if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
