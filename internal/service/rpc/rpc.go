// Package rpc adapts internal/service.Engine to a gRPC service. Full
// wire messages would normally come from protoc-generated Go bindings
// for a SendQuery/UpdateComponents .proto contract; without running the
// protobuf compiler, this adapter instead uses the protobuf module's own
// pre-generated well-known types (structpb.Struct as a generic envelope
// for a query description and its result) so every message actually
// satisfies proto.Message and travels the real gRPC/protobuf wire
// format. Promoting this envelope to a purpose-built message set, once
// protoc is available in the build pipeline, is mechanical: the method
// names and service name below are exactly what a SendQuery RPC in a
// generated stub would carry.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ecdar/reveal/result"
)

// QueryRunner is the subset of internal/service.Engine this adapter
// depends on, named as an interface so rpc can be tested against a
// fake without pulling in a live CTS.
type QueryRunner interface {
	// RunQuery executes the query described by req (kind + operand
	// names, as generic key/value fields) and returns its outcome.
	RunQuery(ctx context.Context, req map[string]any) result.QueryResult
}

// Server implements the hand-registered gRPC service described by
// serviceDesc below.
type Server struct {
	runner QueryRunner
}

// NewServer wraps runner for gRPC registration.
func NewServer(runner QueryRunner) *Server { return &Server{runner: runner} }

// SendQuery is the RPC handler: decode the structpb envelope into a
// plain map, run the query, encode result.QueryResult back into a
// structpb envelope.
func (s *Server) SendQuery(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	res := s.runner.RunQuery(ctx, req.AsMap())

	return queryResultToStruct(res)
}

// UpdateComponents accepts a structpb envelope and answers
// {"accepted": true}; it does not read the payload, store components
// or invalidate any cache entry.
func (s *Server) UpdateComponents(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"accepted": true})
}

func queryResultToStruct(res result.QueryResult) (*structpb.Struct, error) {
	fields := map[string]any{"ok": res.Ok()}
	if !res.Ok() {
		fields["error"] = res.Error()
	}
	if len(res.TraceIDs) > 0 {
		ids := make([]any, len(res.TraceIDs))
		for i, id := range res.TraceIDs {
			ids[i] = id
		}
		fields["trace_ids"] = ids
	}

	return structpb.NewStruct(fields)
}

// serviceDesc is the hand-registered equivalent of a protoc-generated
// grpc.ServiceDesc for a "RevealEngine" service exposing SendQuery and
// UpdateComponents, both taking and returning a structpb.Struct
// envelope.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: "reveal.RevealEngine",
	HandlerType: (*any)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SendQuery", Handler: sendQueryHandler},
		{MethodName: "UpdateComponents", Handler: updateComponentsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "reveal.proto",
}

func sendQueryHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(*Server).SendQuery(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/reveal.RevealEngine/SendQuery"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(*Server).SendQuery(ctx, req.(*structpb.Struct))
	}

	return interceptor(ctx, in, info, handler)
}

func updateComponentsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(*Server).UpdateComponents(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/reveal.RevealEngine/UpdateComponents"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(*Server).UpdateComponents(ctx, req.(*structpb.Struct))
	}

	return interceptor(ctx, in, info, handler)
}

// Register attaches the RevealEngine service to gs.
func Register(gs *grpc.Server, runner QueryRunner) {
	gs.RegisterService(&serviceDesc, NewServer(runner))
}
