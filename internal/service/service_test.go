package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecdar/reveal/component"
	"github.com/ecdar/reveal/config"
	"github.com/ecdar/reveal/cts"
	"github.com/ecdar/reveal/internal/service"
	"github.com/ecdar/reveal/zone/refimpl"
)

func lampComponent(t *testing.T) *component.CompiledComponent {
	t.Helper()
	raw := &component.Raw{
		Name:   "Lamp",
		Clocks: []string{"x"},
		Locations: []component.RawLocation{
			{ID: "off", Initial: true},
			{ID: "on"},
		},
		Edges: []component.RawEdge{
			{ID: "e1", Src: "off", Dst: "on", Action: "on", Kind: component.Output},
			{ID: "e2", Src: "on", Dst: "off", Action: "off", Kind: component.Output},
		},
	}
	cc, err := component.Compile(raw, refimpl.Kernel{})
	require.NoError(t, err)

	return cc
}

func TestEngine_Refine_SelfRefinementSucceeds(t *testing.T) {
	t.Parallel()
	cts.SetKernel(refimpl.Kernel{})

	var buf bytes.Buffer
	eng := service.New(config.New(), zerolog.New(&buf))

	node := &cts.Leaf{Component: lampComponent(t), LeafIndex: 0}
	sys := service.System{Name: "Lamp", Node: node}

	res := eng.Refine(context.Background(), sys, sys)
	assert.True(t, res.Ok())
	assert.Contains(t, buf.String(), "query answered")
}

func TestEngine_Consistency_LogsFailureReason(t *testing.T) {
	t.Parallel()
	cts.SetKernel(refimpl.Kernel{})

	raw := &component.Raw{
		Name:   "NotDet",
		Clocks: []string{"x"},
		Locations: []component.RawLocation{
			{ID: "idle", Initial: true},
		},
		Edges: []component.RawEdge{
			{ID: "e1", Src: "idle", Dst: "idle", Action: "go", Kind: component.Input},
			{ID: "e2", Src: "idle", Dst: "idle", Action: "go", Kind: component.Input},
		},
	}
	cc, err := component.Compile(raw, refimpl.Kernel{})
	require.NoError(t, err)

	var buf bytes.Buffer
	eng := service.New(config.New(), zerolog.New(&buf))
	node := &cts.Leaf{Component: cc, LeafIndex: 0}

	res := eng.Consistency(context.Background(), service.System{Name: "NotDet", Node: node})
	assert.False(t, res.Ok())
	assert.Contains(t, buf.String(), "query failed")
}
