package rpc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ecdar/reveal/internal/service/rpc"
	"github.com/ecdar/reveal/result"
)

type fakeRunner struct {
	got map[string]any
	res result.QueryResult
}

func (f *fakeRunner) RunQuery(ctx context.Context, req map[string]any) result.QueryResult {
	f.got = req

	return f.res
}

func TestServer_SendQuery_RoundTripsThroughStructpb(t *testing.T) {
	t.Parallel()

	fake := &fakeRunner{res: result.SuccessPath([]string{"E5"})}
	srv := rpc.NewServer(fake)

	req, err := structpb.NewStruct(map[string]any{"kind": "reachability", "system": "Component3"})
	require.NoError(t, err)

	resp, err := srv.SendQuery(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "reachability", fake.got["kind"])
	assert.Equal(t, true, resp.AsMap()["ok"])
	assert.Equal(t, []any{"E5"}, resp.AsMap()["trace_ids"])
}

func TestServer_SendQuery_EncodesFailureReason(t *testing.T) {
	t.Parallel()

	fake := &fakeRunner{res: result.FromPath(result.PathFailure{Unreachable: true})}
	srv := rpc.NewServer(fake)

	req, err := structpb.NewStruct(map[string]any{"kind": "reachability"})
	require.NoError(t, err)

	resp, err := srv.SendQuery(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, false, resp.AsMap()["ok"])
	assert.Equal(t, "unreachable", resp.AsMap()["error"])
}
