package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"uscalendar/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// bufClient serves CalendarService over an in-memory listener.
func bufClient(t *testing.T) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	gs := grpc.NewServer(grpc.UnaryInterceptor(logUnary(discardLogger())))
	RegisterMarketCalendar(gs, CalendarService{})
	go gs.Serve(lis)
	t.Cleanup(gs.Stop)

	c, err := Dial("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestGRPCIsOpen(t *testing.T) {
	c := bufClient(t)
	ctx := context.Background()

	tests := []struct {
		date string
		open bool
	}{
		{"2024-11-28", false},
		{"2024-11-29", true},
		{"2022-04-15", false},
		{"2023-01-01", false},
	}
	for _, tt := range tests {
		got, err := c.IsOpen(ctx, tt.date)
		if err != nil {
			t.Fatalf("IsOpen(%s): %v", tt.date, err)
		}
		if got != tt.open {
			t.Errorf("IsOpen(%s) = %v, want %v", tt.date, got, tt.open)
		}
	}
}

func TestGRPCIsWeekend(t *testing.T) {
	c := bufClient(t)
	ctx := context.Background()

	if w, err := c.IsWeekend(ctx, "2024-06-01"); err != nil || !w {
		t.Errorf("IsWeekend(2024-06-01) = %v, %v; want true", w, err)
	}
	if w, err := c.IsWeekend(ctx, "2024-11-28"); err != nil || w {
		t.Errorf("IsWeekend(2024-11-28) = %v, %v; want false", w, err)
	}
}

func TestGRPCNextOpen(t *testing.T) {
	c := bufClient(t)

	got, err := c.NextOpen(context.Background(), "2021-12-23")
	if err != nil {
		t.Fatal(err)
	}
	if got != "2021-12-27" {
		t.Errorf("NextOpen(2021-12-23) = %q, want 2021-12-27", got)
	}
}

func TestGRPCInvalidArgument(t *testing.T) {
	c := bufClient(t)

	_, err := c.IsOpen(context.Background(), "not-a-date")
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("code = %v, want InvalidArgument (err %v)", status.Code(err), err)
	}
	_, err = c.NextOpen(context.Background(), "")
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("code = %v, want InvalidArgument (err %v)", status.Code(err), err)
	}
}

func TestServerListenAndServe(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"pong": "ok"})
	})

	s := NewServer(config.Server{Host: "127.0.0.1", Port: 0, GRPCPort: 0}, mux, discardLogger())
	if err := s.Listen(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	resp, err := http.Get("http://" + s.HTTPAddr() + "/ping")
	if err != nil {
		t.Fatalf("GET /ping: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /ping status = %d", resp.StatusCode)
	}

	c, err := Dial(s.GRPCAddr())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	rpcCtx, rpcCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer rpcCancel()
	if open, err := c.IsOpen(rpcCtx, "2024-07-04"); err != nil || open {
		t.Errorf("IsOpen(2024-07-04) over TCP = %v, %v; want false", open, err)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe returned %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("ListenAndServe did not return after cancel")
	}
}
