package command

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChannelSerializerSerializesSameChannel(t *testing.T) {
	s := NewChannelSerializer()
	var running, maxRunning atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Do("general", func() {
				n := running.Add(1)
				for {
					m := maxRunning.Load()
					if n <= m || maxRunning.CompareAndSwap(m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				running.Add(-1)
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxRunning.Load())
	assert.Zero(t, s.Len())
}

func TestChannelSerializerRunsChannelsInParallel(t *testing.T) {
	s := NewChannelSerializer()
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go s.Do("a", func() {
		close(started)
		<-release
	})
	<-started

	go func() {
		s.Do("b", func() {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("channel b was blocked by channel a")
	}
	assert.Equal(t, 1, s.Len())
	close(release)
}
