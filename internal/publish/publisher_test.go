package publish

import (
	"context"
	"math"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/specialistvlad/neuron/internal/export"
	"github.com/specialistvlad/neuron/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zishang520/socket.io/v2/socket"
)

func TestOptionsWithDefaults(t *testing.T) {
	t.Run("zero options", func(t *testing.T) {
		got := Options{URL: "http://localhost:3000"}.withDefaults()
		assert.Equal(t, "/", got.Namespace)
		assert.Equal(t, DefaultEvent, got.Event)
		assert.Equal(t, DefaultTimeout, got.Timeout)
		assert.Empty(t, got.AckEvent)
	})

	t.Run("explicit options are kept", func(t *testing.T) {
		in := Options{
			URL:       "http://localhost:3000",
			Namespace: "/viz",
			Event:     "snapshot",
			AckEvent:  "snapshot_ok",
			Timeout:   time.Second,
		}
		assert.Equal(t, in, in.withDefaults())
	})
}

func TestConnect_InvalidOptions(t *testing.T) {
	testCases := []struct {
		name    string
		url     string
		wantErr string
	}{
		{name: "empty URL", url: "", wantErr: "publish URL is required"},
		{name: "unparsable URL", url: "://nope", wantErr: "failed to parse URL"},
		{name: "missing scheme", url: "localhost:3000", wantErr: "needs a scheme and a host"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Connect(context.Background(), Options{URL: tc.url})
			require.Error(t, err)
			assert.Nil(t, p)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestConnect_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, err := Connect(ctx, Options{URL: "http://127.0.0.1:1", Timeout: time.Second})
	require.Error(t, err)
	assert.Nil(t, p)
}

func TestPayloadOf(t *testing.T) {
	g := graph.New()
	a := g.Leaf(2, "a")
	nan := g.Constant(math.NaN())
	out := g.Mul(a, nan)
	g.SetLabel(out, "out")

	snap, err := export.Build(g, out)
	require.NoError(t, err)

	payload, err := payloadOf(snap)
	require.NoError(t, err)

	assert.Equal(t, out.String(), payload["root"])
	nodes, ok := payload["nodes"].([]any)
	require.True(t, ok)
	require.Len(t, nodes, 3)

	last, ok := nodes[2].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "out", last["label"])
	assert.Equal(t, "*", last["op"])
	assert.Equal(t, "NaN", last["value"])
	assert.Equal(t, 0.0, last["gradient"])

	edges, ok := payload["edges"].([]any)
	require.True(t, ok)
	assert.Len(t, edges, 2)
}

// startServer runs an in-process socket.io server. Every payload received
// on event is sent to the returned channel; when ack is set the server
// answers each one with that event.
func startServer(t *testing.T, event, ack string) (string, <-chan any) {
	t.Helper()

	received := make(chan any, 4)
	io := socket.NewServer(nil, nil)
	io.On("connection", func(clients ...any) {
		client := clients[0].(*socket.Socket)
		client.On(event, func(args ...any) {
			if len(args) > 0 {
				received <- args[0]
			}
			if ack != "" {
				client.Emit(ack)
			}
		})
	})

	srv := httptest.NewServer(io.ServeHandler(nil))
	t.Cleanup(func() {
		io.Close(nil)
		srv.Close()
	})
	return srv.URL, received
}

func workedSnapshot(t *testing.T) export.Snapshot {
	t.Helper()
	g := graph.New()
	a := g.Leaf(2, "a")
	b := g.Leaf(-3, "b")
	e := g.Mul(a, b)
	g.SetLabel(e, "e")
	g.Backward(e)

	snap, err := export.Build(g, e)
	require.NoError(t, err)
	return snap
}

func TestPublish(t *testing.T) {
	snap := workedSnapshot(t)

	t.Run("payload reaches the server", func(t *testing.T) {
		url, received := startServer(t, "snapshot", "")

		p, err := Connect(context.Background(), Options{URL: url, Event: "snapshot", Timeout: 5 * time.Second})
		require.NoError(t, err)
		defer p.Close()

		require.NoError(t, p.Publish(context.Background(), snap))

		select {
		case got := <-received:
			payload, ok := got.(map[string]any)
			require.True(t, ok, "payload is %T", got)
			assert.Equal(t, snap.Root.String(), payload["root"])
			assert.Len(t, payload["nodes"], 3)
			assert.Len(t, payload["edges"], 2)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not receive the snapshot")
		}
	})

	t.Run("waits for the acknowledgement", func(t *testing.T) {
		url, received := startServer(t, DefaultEvent, "graph_ok")

		p, err := Connect(context.Background(), Options{URL: url, AckEvent: "graph_ok", Timeout: 5 * time.Second})
		require.NoError(t, err)
		defer p.Close()

		require.NoError(t, p.Publish(context.Background(), snap))
		assert.Len(t, received, 1, "the ack is only sent after the payload arrived")
	})

	t.Run("missing acknowledgement times out", func(t *testing.T) {
		url, _ := startServer(t, DefaultEvent, "")

		p, err := Connect(context.Background(), Options{URL: url, AckEvent: "graph_ok", Timeout: time.Second})
		require.NoError(t, err)
		defer p.Close()

		err = p.Publish(context.Background(), snap)
		assert.EqualError(t, err, "timed out after 1s waiting for event 'graph_ok'")
	})

	t.Run("closed publisher refuses to emit", func(t *testing.T) {
		url, _ := startServer(t, DefaultEvent, "")

		p, err := Connect(context.Background(), Options{URL: url, Timeout: 5 * time.Second})
		require.NoError(t, err)
		require.NoError(t, p.Close())

		assert.EqualError(t, p.Publish(context.Background(), snap), "socket.io client is not connected")
	})
}
