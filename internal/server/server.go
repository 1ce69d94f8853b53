package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/flushrush/internal/bets"
	"github.com/lox/flushrush/internal/deck"
	"github.com/lox/flushrush/internal/simulator"
)

// Server runs simulations on behalf of WebSocket clients. Each connection
// carries exactly one task: the client sends it, receives a stream of
// progress messages, then a single done or error message.
type Server struct {
	addr       string
	upgrader   websocket.Upgrader
	logger     *log.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	httpServer *http.Server
}

// New creates a simulation server listening on addr.
func New(addr string, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins
				// In production, implement proper origin checking
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.WithPrefix("server"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Handler returns the server's HTTP handler, useful for serving through a
// test listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/simulate", s.handleSimulate)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Start listens and serves until Shutdown is called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	s.logger.Info("Starting simulation server", "addr", s.addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown cancels in-flight simulations and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	s.runSession(conn)
}

// runSession drives one task to completion. All writes happen on this
// goroutine; a separate reader goroutine exists only to detect client
// disconnects and cancel the run.
func (s *Server) runSession(conn *websocket.Conn) {
	var task Task
	if err := conn.ReadJSON(&task); err != nil {
		s.logger.Error("Failed to read task", "error", err)
		return
	}

	s.logger.Info("Task received", "hands", task.NumHands, "workers", task.Workers)

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	// Cancel the run when the client goes away. The client sends nothing
	// after the task, so any read result means the connection is done.
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				cancel()
				return
			}
		}
	}()

	paytable := bets.DefaultPaytable()
	if task.PayoutConfig != nil {
		paytable = *task.PayoutConfig
	}

	progressCh := make(chan float64, 64)
	cfg := simulator.Config{
		Hands:            task.NumHands,
		Paytable:         paytable,
		MinThreeCardRank: deck.Rank(task.MinThreeCardFlushRank),
		Seed:             task.Seed,
		Workers:          task.Workers,
		Logger:           s.logger,
		OnProgress: func(percent float64) {
			select {
			case progressCh <- percent:
			default:
			}
		},
	}

	type outcome struct {
		summary *simulator.Summary
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		summary, err := simulator.SimulateParallel(ctx, cfg)
		done <- outcome{summary, err}
	}()

	for {
		select {
		case percent := <-progressCh:
			if err := s.write(conn, ProgressMessage{Kind: KindProgress, Percent: percent}); err != nil {
				cancel()
				<-done
				return
			}

		case out := <-done:
			if out.err != nil {
				s.logger.Error("Simulation failed", "error", out.err)
				_ = s.write(conn, ErrorMessage{Kind: KindError, Message: out.err.Error()})
				return
			}
			_ = s.write(conn, DoneMessage{
				Kind:             KindDone,
				Results:          out.summary.Results,
				HandDistribution: out.summary.HandDistribution,
				Deterministic:    out.summary.Deterministic,
			})
			s.logger.Info("Task complete", "hands", out.summary.HandDistribution.TotalHands)
			return
		}
	}
}

func (s *Server) write(conn *websocket.Conn, v interface{}) error {
	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(v)
}
