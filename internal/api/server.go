// Package api runs the calendar's network listeners: the JSON HTTP API and
// the MarketCalendar gRPC service.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"uscalendar/internal/config"
)

// Server hosts the HTTP and gRPC endpoints.
type Server struct {
	httpAddr string
	grpcAddr string
	http     *http.Server
	grpc     *grpc.Server
	log      *slog.Logger

	httpLis net.Listener
	grpcLis net.Listener
}

// NewServer creates a Server from cfg. handler serves HTTP; the gRPC server
// gets the MarketCalendar service.
func NewServer(cfg config.Server, handler http.Handler, log *slog.Logger) *Server {
	log = log.With("component", "api")
	gs := grpc.NewServer(grpc.UnaryInterceptor(logUnary(log)))
	RegisterMarketCalendar(gs, CalendarService{})

	return &Server{
		httpAddr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		grpcAddr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.GRPCPort)),
		http: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		grpc: gs,
		log:  log,
	}
}

// Listen binds both listeners. It is separate from Serve so callers (and
// tests using port 0) can learn the bound addresses first.
func (s *Server) Listen() error {
	hl, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.httpAddr, err)
	}
	gl, err := net.Listen("tcp", s.grpcAddr)
	if err != nil {
		hl.Close()
		return fmt.Errorf("listening on %s: %w", s.grpcAddr, err)
	}
	s.httpLis, s.grpcLis = hl, gl
	return nil
}

// HTTPAddr returns the bound HTTP address, or the configured one before Listen.
func (s *Server) HTTPAddr() string {
	if s.httpLis != nil {
		return s.httpLis.Addr().String()
	}
	return s.httpAddr
}

// GRPCAddr returns the bound gRPC address, or the configured one before Listen.
func (s *Server) GRPCAddr() string {
	if s.grpcLis != nil {
		return s.grpcLis.Addr().String()
	}
	return s.grpcAddr
}

// ListenAndServe binds (if needed) and serves both protocols until ctx is
// cancelled or either listener fails, then shuts both down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s.httpLis == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	errc := make(chan error, 2)
	go func() {
		s.log.Info("http listening", "addr", s.HTTPAddr())
		if err := s.http.Serve(s.httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("http: %w", err)
			return
		}
		errc <- nil
	}()
	go func() {
		s.log.Info("grpc listening", "addr", s.GRPCAddr())
		if err := s.grpc.Serve(s.grpcLis); err != nil {
			errc <- fmt.Errorf("grpc: %w", err)
			return
		}
		errc <- nil
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errc:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil && serveErr == nil {
		serveErr = err
	}
	return serveErr
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()

	err := s.http.Shutdown(ctx)

	select {
	case <-done:
	case <-ctx.Done():
		s.grpc.Stop()
	}
	s.log.Info("api stopped")
	return err
}

func logUnary(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		log.Debug("rpc", "method", info.FullMethod, "code", status.Code(err).String(), "elapsed", time.Since(start))
		return resp, err
	}
}
