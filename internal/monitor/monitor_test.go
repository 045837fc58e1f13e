package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/pbsnap/internal/item"
	"go.klb.dev/pbsnap/internal/pasteboard"
	"go.klb.dev/pbsnap/internal/snapshot"
)

func newTextFake(text string) *pasteboard.Fake {
	return &pasteboard.Fake{
		DeclaredTypes: []string{pasteboard.TypePlainText},
		Strings:       map[string]string{pasteboard.TypePlainText: text},
		Count:         1,
	}
}

func waitEvent(t *testing.T, m *Monitor) *item.Item {
	t.Helper()
	select {
	case it := <-m.Events():
		return it
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for monitor event")
		return nil
	}
}

func assertNoEvent(t *testing.T, m *Monitor) {
	t.Helper()
	select {
	case it := <-m.Events():
		t.Fatalf("unexpected event: %+v", it)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMonitorEmitsOnCounterChange(t *testing.T) {
	fake := newTextFake("first")
	m := New(snapshot.NewReader(fake), item.MonitorConfig{PollIntervalMS: 10})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, m.Start(ctx))

	// No mutation, no event.
	assertNoEvent(t, m)

	fake.Script(func(f *pasteboard.Fake) {
		f.Strings[pasteboard.TypePlainText] = "second"
		f.Count++
	})

	it := waitEvent(t, m)
	require.NotNil(t, it.PlainText)
	assert.Equal(t, "second", *it.PlainText)
}

func TestMonitorSkipsExcludedBundleIDs(t *testing.T) {
	fake := newTextFake("secret")
	fake.App = &pasteboard.SourceApp{BundleID: "com.1password.1password", Name: "1Password"}

	m := New(snapshot.NewReader(fake), item.MonitorConfig{
		PollIntervalMS:    10,
		ExcludedBundleIDs: []string{"com.1password.1password"},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, m.Start(ctx))

	fake.Bump()
	assertNoEvent(t, m)

	fake.Script(func(f *pasteboard.Fake) {
		f.App = &pasteboard.SourceApp{BundleID: "com.apple.Safari", Name: "Safari"}
		f.Strings[pasteboard.TypePlainText] = "public"
		f.Count++
	})

	it := waitEvent(t, m)
	assert.Equal(t, "public", *it.PlainText)
}

func TestMonitorStartTwice(t *testing.T) {
	m := New(snapshot.NewReader(newTextFake("x")), item.MonitorConfig{PollIntervalMS: 10})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, m.Start(ctx))
	assert.Error(t, m.Start(ctx))
}

func TestMonitorStop(t *testing.T) {
	fake := newTextFake("x")
	m := New(snapshot.NewReader(fake), item.MonitorConfig{PollIntervalMS: 10})

	require.NoError(t, m.Start(context.Background()))
	m.Stop()
	m.Stop() // idempotent

	fake.Bump()
	assertNoEvent(t, m)
}

func TestMonitorUnsupportedPlatformStaysQuiet(t *testing.T) {
	fake := &pasteboard.Fake{Unreachable: true}
	m := New(snapshot.NewReader(fake), item.MonitorConfig{PollIntervalMS: 10})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, m.Start(ctx))

	// Counter is pinned at 0, so no mutation is ever observed.
	assertNoEvent(t, m)
}
