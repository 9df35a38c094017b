package script

import (
	"errors"
	"testing"
	"time"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadlineFiresWhileRunning(t *testing.T) {
	vm := goja.New()
	dl := startDeadline(vm, time.Hour, "too slow")
	defer dl.stop()

	dl.fire()
	_, err := vm.RunString("1 + 1")
	var interrupted *goja.InterruptedError
	require.True(t, errors.As(err, &interrupted), "got %v", err)
	assert.Equal(t, "too slow", interrupted.Value())
}

func TestDeadlineIgnoresLateFire(t *testing.T) {
	vm := goja.New()
	dl := startDeadline(vm, time.Hour, "too slow")
	dl.stop()

	// The timer callback may still run after stop returned.
	dl.fire()
	v, err := vm.RunString("1 + 1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v.ToInteger())
}

func TestCallAfterLateFire(t *testing.T) {
	p, err := Compile("height", "() => 7", time.Hour)
	require.NoError(t, err)

	dl := startDeadline(p.vm, time.Hour, "stale")
	dl.stop()
	dl.fire()

	v, err := p.Call(0, 0, 0, 0, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v.ToInteger())
}
