package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestRegistryChannels(t *testing.T) {
	assert := assert.New(t)

	r := NewRegistry()
	assert.Len(Channels, 16)
	for _, ch := range Channels {
		assert.NotNil(r.Channel(ch), ch)
	}
	assert.Nil(r.Channel("select"))

	_, err := r.AddListener("select", On, func(Event) {})
	assert.Error(err)

	_, err = r.AddListener(A, "during", func(Event) {})
	assert.Error(err)

	_, err = r.AddListener(A, On, nil)
	assert.Error(err)

	assert.Error(r.Dispatch("select", On))
}

func TestDispatchOrder(t *testing.T) {
	assert := assert.New(t)

	r := NewRegistry()

	var got []string
	_, err := r.AddListener(A, Before, func(ev Event) {
		assert.Equal(Event{Channel: A, Kind: Before}, ev)
		got = append(got, "first")
	})
	require.NoError(t, err)

	r.AddListener(A, Before, func(Event) { got = append(got, "second") })
	r.AddListener(A, After, func(Event) { got = append(got, "after") })
	r.AddListener(B, Before, func(Event) { got = append(got, "other channel") })

	assert.NoError(r.Dispatch(A, Before))
	assert.Equal([]string{"first", "second"}, got)
}

func TestDispatchWithoutListeners(t *testing.T) {
	assert := assert.New(t)

	r := NewRegistry()
	for _, ch := range Channels {
		for _, kind := range Kinds {
			assert.NoError(r.Dispatch(ch, kind))
		}
	}
}

func TestRemoveAndHas(t *testing.T) {
	assert := assert.New(t)

	r := NewRegistry()

	calls := 0
	h, err := r.AddListener(Start, On, func(Event) { calls++ })
	require.NoError(t, err)

	assert.True(r.HasListener(h))
	assert.Equal(Start, h.Channel())
	assert.Equal(On, h.Kind())

	assert.True(r.RemoveListener(h))
	assert.False(r.RemoveListener(h))
	assert.False(r.HasListener(h))
	assert.False(r.HasListener(Handle{}))

	assert.NoError(r.Dispatch(Start, On))
	assert.Equal(0, calls)

	// a handle from another channel is not accepted by a dispatcher
	h, _ = r.AddListener(Back, On, func(Event) {})
	assert.False(r.Channel(Start).HasListener(h))
	assert.False(r.Channel(Start).RemoveListener(h))
	assert.True(r.Channel(Back).HasListener(h))
}

func TestSameFuncAddedTwice(t *testing.T) {
	assert := assert.New(t)

	r := NewRegistry()

	calls := 0
	fn := func(Event) { calls++ }
	h1, _ := r.AddListener(X, On, fn)
	h2, _ := r.AddListener(X, On, fn)
	assert.NotEqual(h1, h2)

	r.Dispatch(X, On)
	assert.Equal(2, calls)

	r.RemoveListener(h1)
	r.Dispatch(X, On)
	assert.Equal(3, calls)
}

func TestRemoveAll(t *testing.T) {
	assert := assert.New(t)

	r := NewRegistry()
	for _, ch := range Channels {
		for _, kind := range Kinds {
			r.AddListener(ch, kind, func(Event) {})
		}
	}

	r.RemoveAll(A, B)
	for _, kind := range Kinds {
		assert.Equal(0, r.Channel(A).Len(kind))
		assert.Equal(0, r.Channel(B).Len(kind))
		assert.Equal(1, r.Channel(X).Len(kind))
	}

	r.Channel(X).RemoveAll(On)
	assert.Equal(0, r.Channel(X).Len(On))
	assert.Equal(1, r.Channel(X).Len(Before))

	r.RemoveAll()
	for _, ch := range Channels {
		for _, kind := range Kinds {
			assert.Equal(0, r.Channel(ch).Len(kind))
		}
	}
}

func TestDispatchUsesSnapshot(t *testing.T) {
	assert := assert.New(t)

	r := NewRegistry()

	var got []string
	var second Handle
	r.AddListener(Up, On, func(Event) {
		got = append(got, "first")
		r.RemoveListener(second)
		r.AddListener(Up, On, func(Event) { got = append(got, "late") })
	})
	second, _ = r.AddListener(Up, On, func(Event) { got = append(got, "second") })

	assert.NoError(r.Dispatch(Up, On))
	assert.Equal([]string{"first", "second"}, got)

	got = nil
	r.Channel(Up).RemoveAll()
	r.AddListener(Up, On, func(Event) { got = append(got, "only") })
	r.Dispatch(Up, On)
	assert.Equal([]string{"only"}, got)
}

var errBoom = errors.New("boom")

func TestListenerFaultIsolated(t *testing.T) {
	assert := assert.New(t)

	r := NewRegistry()

	var got []string
	r.AddListener(RightTrigger, Before, func(Event) { panic("boom") })
	r.AddListener(RightTrigger, Before, func(Event) { got = append(got, "survivor") })
	r.AddListener(RightTrigger, Before, func(Event) { panic(errBoom) })

	err := r.Dispatch(RightTrigger, Before)
	assert.Error(err)
	assert.Equal([]string{"survivor"}, got)

	errs := multierr.Errors(err)
	assert.Len(errs, 2)
	assert.Contains(errs[0].Error(), "before listener on rightTrigger: boom")
	assert.ErrorIs(errs[1], errBoom)
}

func TestRegistriesAreIndependent(t *testing.T) {
	assert := assert.New(t)

	r1 := NewRegistry()
	r2 := NewRegistry()

	calls := 0
	h, _ := r1.AddListener(A, On, func(Event) { calls++ })

	h2, _ := r2.AddListener(A, On, func(Event) {})

	r2.Dispatch(A, On)
	assert.Equal(0, calls)

	assert.False(r2.HasListener(h))
	assert.False(r2.RemoveListener(h))
	assert.True(r1.HasListener(h))
	assert.False(r1.HasListener(h2))
}
