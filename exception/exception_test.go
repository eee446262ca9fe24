package exception

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mezonai/syncstate/logx"
)

type syncBuffer struct {
	ch  chan struct{}
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	n, err := b.buf.Write(p)
	select {
	case b.ch <- struct{}{}:
	default:
	}
	return n, err
}

func TestSafeGoRecoversPanic(t *testing.T) {
	out := &syncBuffer{ch: make(chan struct{}, 1)}
	logx.SetOutput(out)

	SafeGo("worker", func() {
		panic("boom")
	})

	select {
	case <-out.ch:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for panic to be logged")
	}
	assert.Contains(t, out.buf.String(), "panic in worker: boom")
}
