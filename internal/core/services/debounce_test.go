package services

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_TriggerFires(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	defer d.Stop()

	var fired atomic.Int32
	d.Trigger(func() { fired.Add(1) })

	assert.Eventually(t, func() bool {
		return fired.Load() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestDebouncer_RetriggerCancelsPrevious(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var first, second atomic.Int32
	d.Trigger(func() { first.Add(1) })
	time.Sleep(5 * time.Millisecond)
	d.Trigger(func() { second.Add(1) })

	assert.Eventually(t, func() bool {
		return second.Load() == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(0), first.Load(), "superseded callback must not fire")
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	var fired atomic.Int32
	d.Trigger(func() { fired.Add(1) })
	cancelled := d.Cancel()

	assert.True(t, cancelled)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestDebouncer_CancelWithoutPending(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	assert.False(t, d.Cancel())
}

func TestDebouncer_StopBlocksFurtherTriggers(t *testing.T) {
	d := NewDebouncer(5 * time.Millisecond)

	var fired atomic.Int32
	d.Stop()
	d.Trigger(func() { fired.Add(1) })

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}
