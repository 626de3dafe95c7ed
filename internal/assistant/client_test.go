package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// Every dispatched worker must run to completion and exit, even when
	// nobody receives its reply. The opencensus worker is started by a
	// transitive init and lives for the whole process.
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}

type stubProvider struct {
	reply string
	err   error
	delay time.Duration
}

func (p *stubProvider) Converse(_ context.Context, _ []Turn, _ string) (string, error) {
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	return p.reply, p.err
}

func TestGateway_SendDeliversExactlyOnce(t *testing.T) {
	g := NewGateway(&stubProvider{reply: "[ADD] Review notes u2i3"})
	ch := g.Send([]Turn{{Role: "user", Content: "plan"}}, "[]")

	select {
	case r := <-ch:
		assert.Equal(t, "[ADD] Review notes u2i3", r.Content)
		assert.Empty(t, r.Err)
	case <-time.After(time.Second):
		t.Fatal("no reply delivered")
	}

	// One-shot: a second receive would block forever.
	select {
	case r := <-ch:
		t.Fatalf("unexpected second reply: %+v", r)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestGateway_SendSurfacesErrorText(t *testing.T) {
	g := NewGateway(&stubProvider{err: errors.New("API error: status 500")})
	r := <-g.Send(nil, "")
	assert.Empty(t, r.Content)
	assert.Equal(t, "API error: status 500", r.Err)
}

func TestGateway_AbandonedReplyDoesNotLeakWorker(t *testing.T) {
	g := NewGateway(&stubProvider{reply: "late", delay: 30 * time.Millisecond})
	_ = g.Send(nil, "")
	// Drop the channel on the floor; goleak verifies the worker still exits.
	time.Sleep(60 * time.Millisecond)
}

func TestGateway_NonBlockingPollPattern(t *testing.T) {
	g := NewGateway(&stubProvider{reply: "done", delay: 30 * time.Millisecond})
	ch := g.Send(nil, "")

	// The session polls with a non-blocking receive once per tick.
	pending := true
	var got Reply
	deadline := time.Now().Add(time.Second)
	for pending && time.Now().Before(deadline) {
		select {
		case got = <-ch:
			pending = false
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
	require.False(t, pending, "reply never arrived")
	assert.Equal(t, "done", got.Content)
}
