package api

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"uscalendar/internal/calendar"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "uscalendar.MarketCalendar"

// MarketCalendarServer is the gRPC surface of the calendar. Dates travel as
// YYYY-MM-DD strings in well-known wrapper messages, so no generated stubs
// are needed.
type MarketCalendarServer interface {
	IsOpen(ctx context.Context, date *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
	IsWeekend(ctx context.Context, date *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
	NextOpen(ctx context.Context, date *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

// RegisterMarketCalendar registers srv on gs.
func RegisterMarketCalendar(gs grpc.ServiceRegistrar, srv MarketCalendarServer) {
	gs.RegisterService(&marketCalendarDesc, srv)
}

var marketCalendarDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MarketCalendarServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "IsOpen",
			Handler: unaryHandler("IsOpen", func(s MarketCalendarServer, ctx context.Context, in *wrapperspb.StringValue) (any, error) {
				return s.IsOpen(ctx, in)
			}),
		},
		{
			MethodName: "IsWeekend",
			Handler: unaryHandler("IsWeekend", func(s MarketCalendarServer, ctx context.Context, in *wrapperspb.StringValue) (any, error) {
				return s.IsWeekend(ctx, in)
			}),
		},
		{
			MethodName: "NextOpen",
			Handler: unaryHandler("NextOpen", func(s MarketCalendarServer, ctx context.Context, in *wrapperspb.StringValue) (any, error) {
				return s.NextOpen(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "uscalendar/market_calendar.proto",
}

// unaryHandler adapts a typed method to grpc.MethodDesc.Handler, running any
// configured interceptor.
func unaryHandler(method string, call func(MarketCalendarServer, context.Context, *wrapperspb.StringValue) (any, error)) grpc.MethodHandler {
	fullMethod := "/" + ServiceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(wrapperspb.StringValue)
		if err := dec(in); err != nil {
			return nil, err
		}
		s := srv.(MarketCalendarServer)
		if interceptor == nil {
			return call(s, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(s, ctx, req.(*wrapperspb.StringValue))
		})
	}
}

// Compile-time interface check.
var _ MarketCalendarServer = CalendarService{}

// CalendarService implements MarketCalendarServer on top of the rules.
type CalendarService struct{}

func parseDate(date *wrapperspb.StringValue) (time.Time, error) {
	d, err := calendar.ParseDate(date.GetValue())
	if err != nil {
		return time.Time{}, status.Error(codes.InvalidArgument, err.Error())
	}
	return d, nil
}

// IsOpen reports whether the market is open on the requested date.
func (CalendarService) IsOpen(_ context.Context, date *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	return wrapperspb.Bool(calendar.IsOpen(d)), nil
}

// IsWeekend reports whether the requested date is a Saturday or Sunday.
func (CalendarService) IsWeekend(_ context.Context, date *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	return wrapperspb.Bool(calendar.IsWeekend(d)), nil
}

// NextOpen returns the first open date after the requested one.
func (CalendarService) NextOpen(_ context.Context, date *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	return wrapperspb.String(calendar.FormatDate(calendar.NextOpenDate(d))), nil
}
