package hub

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/soar/padcam/controls"
	"github.com/soar/padcam/events"
	"github.com/soar/padcam/gamepad"
)

func testClient(h *Hub) *Client {
	return &Client{
		hub:  h,
		send: make(chan []byte, 16),
		log:  zap.NewNop(),
	}
}

func receive(t *testing.T, c *Client) WSMessage {
	t.Helper()

	select {
	case data, ok := <-c.send:
		require.True(t, ok, "send closed")
		var msg WSMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message")
	}
	return WSMessage{}
}

func TestMessageEncoding(t *testing.T) {
	assert := assert.New(t)

	data, err := json.Marshal(NewEventMessage(7, events.Event{Channel: events.LeftStick, Kind: events.After}))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal("event", raw["type"])
	assert.Equal(7.0, raw["seq"])
	assert.Equal(map[string]any{"channel": "leftStick", "kind": "after"}, raw["event"])
	assert.NotContains(raw, "data")
	assert.NotContains(raw, "changes")

	data, err = json.Marshal(NewErrorMessage(errors.New("nope")))
	require.NoError(t, err)
	assert.Contains(string(data), `"error":"nope"`)

	var msg ClientMessage
	require.NoError(t, json.Unmarshal([]byte(`{"type":"params","params":{"rotateDelta":0.5,"leftStickXThreshold":0.2}}`), &msg))
	assert.Equal(TypeParams, msg.Type)
	require.NotNil(t, msg.Params)
	assert.Equal(0.5, msg.Params.RotateDelta)
	assert.Equal(0.2, msg.Params.LeftStickXThreshold)
}

func TestBroadcaster(t *testing.T) {
	assert := assert.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(zap.NewNop())
	go h.Run(ctx)

	changes := make(chan gamepad.State)
	evs := make(chan events.Event)
	b := NewBroadcaster(h, changes, evs)
	go b.Run(ctx)

	c := testClient(h)
	b.SendInitialState(c)
	require.True(t, h.Register(c))
	require.Eventually(t, func() bool { return h.Len() == 1 }, time.Second, 10*time.Millisecond)

	msg := receive(t, c)
	assert.Equal(TypeFull, msg.Type)
	require.NotNil(t, msg.Data)
	assert.False(msg.Data.Connected)

	state := gamepad.State{Connected: true}
	state.Buttons.A = true
	changes <- state

	msg = receive(t, c)
	assert.Equal(TypeDelta, msg.Type)
	require.NotNil(t, msg.Changes)
	require.NotNil(t, msg.Changes.Connected)
	assert.True(*msg.Changes.Connected)
	require.NotNil(t, msg.Changes.Buttons)
	assert.True(msg.Changes.Buttons.A)
	assert.Nil(msg.Changes.Sticks)

	evs <- events.Event{Channel: events.A, Kind: events.Before}

	msg = receive(t, c)
	assert.Equal(TypeEvent, msg.Type)
	require.NotNil(t, msg.Event)
	assert.Equal(events.A, msg.Event.Channel)
	assert.Equal(events.Before, msg.Event.Kind)

	late := testClient(h)
	b.SendInitialState(late)
	msg = receive(t, late)
	assert.True(msg.Data.Connected)
	assert.True(msg.Data.Buttons.A)

	cancel()
	select {
	case _, ok := <-c.send:
		assert.False(ok, "send closed on shutdown")
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}
	assert.False(h.Register(testClient(h)))
}

func TestSendTo(t *testing.T) {
	assert := assert.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(zap.NewNop())
	go h.Run(ctx)

	c := testClient(h)
	assert.False(h.SendTo(c, []byte("x")), "not registered")

	h.Register(c)
	require.Eventually(t, func() bool { return h.Len() == 1 }, time.Second, 10*time.Millisecond)
	assert.True(h.SendTo(c, []byte("x")))

	h.Unregister(c)
	require.Eventually(t, func() bool { return h.Len() == 0 }, time.Second, 10*time.Millisecond)
	assert.False(h.SendTo(c, []byte("y")))
}

func TestHandleParams(t *testing.T) {
	assert := assert.New(t)

	h := NewHub(zap.NewNop())
	c := testClient(h)
	params := make(chan controls.Params, 1)

	msg := c.handleParams(nil, params)
	assert.Equal(TypeError, msg.Type)

	bad := controls.DefaultParams()
	bad.RightTriggerThreshold = 3
	msg = c.handleParams(&bad, params)
	assert.Equal(TypeError, msg.Type)
	assert.Empty(params)

	good := controls.DefaultParams()
	good.ElevateDelta = 0.4
	msg = c.handleParams(&good, params)
	assert.Equal(TypeParamsApplied, msg.Type)
	assert.Equal(good, *msg.Params)

	msg = c.handleParams(&good, params)
	assert.Equal(TypeError, msg.Type, "pending update not yet drained")

	assert.Equal(good, <-params)
}
