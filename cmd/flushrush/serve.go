package main

import (
	"context"
	"time"

	"github.com/lox/flushrush/internal/server"
)

// ServeCmd runs the WebSocket simulation service.
type ServeCmd struct {
	Addr  string `kong:"default=':8080',help='Listen address'"`
	Debug bool   `kong:"help='Enable debug logging'"`
}

func (c *ServeCmd) Run() error {
	logger := setupLogger(c.Debug)
	ctx := setupSignalHandler(logger)

	s := server.New(c.Addr, logger)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- s.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
