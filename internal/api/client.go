package api

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client calls a MarketCalendar gRPC server.
type Client struct {
	conn *grpc.ClientConn
}

// Dial creates a client for addr using plaintext transport. Extra options
// are appended after the defaults.
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}
	return &Client{conn: conn}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// IsOpen asks the server whether the market is open on date (YYYY-MM-DD).
func (c *Client) IsOpen(ctx context.Context, date string) (bool, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.conn.Invoke(ctx, "/"+ServiceName+"/IsOpen", wrapperspb.String(date), out); err != nil {
		return false, err
	}
	return out.GetValue(), nil
}

// IsWeekend asks the server whether date is a weekend.
func (c *Client) IsWeekend(ctx context.Context, date string) (bool, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.conn.Invoke(ctx, "/"+ServiceName+"/IsWeekend", wrapperspb.String(date), out); err != nil {
		return false, err
	}
	return out.GetValue(), nil
}

// NextOpen asks the server for the first open date after date.
func (c *Client) NextOpen(ctx context.Context, date string) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.conn.Invoke(ctx, "/"+ServiceName+"/NextOpen", wrapperspb.String(date), out); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}
