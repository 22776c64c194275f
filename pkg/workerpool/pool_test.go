package workerpool

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRunsTasks(t *testing.T) {
	p := New(2)
	defer p.Shutdown()

	var n atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, p.SubmitWait(func() { n.Add(1) }))
	}
	assert.Equal(t, int32(10), n.Load())
}

func TestSubmitAfterShutdown(t *testing.T) {
	p := New(1)
	p.Shutdown()

	err := p.Submit(func() {})
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestSubmitFullPool(t *testing.T) {
	p := New(1)
	defer p.Shutdown()

	block := make(chan struct{})
	_ = p.Submit(func() { <-block })

	// Fill the queue until it rejects.
	var sawFull bool
	for i := 0; i < 10; i++ {
		if err := p.Submit(func() { <-block }); err == ErrPoolFull {
			sawFull = true
			break
		}
	}
	close(block)
	assert.True(t, sawFull)
}

func TestTaskPanicDoesNotKillWorker(t *testing.T) {
	p := New(1)
	defer p.Shutdown()

	_ = p.SubmitWait(func() { panic("boom") })

	done := make(chan struct{})
	require.NoError(t, p.Submit(func() { close(done) }))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not recover from panic")
	}
}
