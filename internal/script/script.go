// Package script compiles user-authored JavaScript mapping functions into
// relief.HeightFunc and relief.ColorFunc values.
//
// Source text is an expression evaluating to a function, typically an arrow
// function such as
//
//	(row, col, x, z, averageColor, colors) => averageColor ? averageColor.l / 10 : 0
//
// It is called with the row, column, cell center, the average sampled color
// (null when nothing was sampled) and the array of samples. Colors are plain
// objects {r, g, b, a, h, s, l}.
package script

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"

	"hexrelief/internal/colorspace"
	"hexrelief/internal/monitoring"
)

// Program is one compiled mapping function together with the runtime that
// owns it. A Program is not safe for concurrent use.
type Program struct {
	name    string
	vm      *goja.Runtime
	fn      goja.Callable
	timeout time.Duration
}

// Compile evaluates src and checks that it yields a function. Calls that run
// longer than timeout are interrupted; zero disables the deadline.
func Compile(name, src string, timeout time.Duration) (*Program, error) {
	vm := goja.New()
	installConsole(vm, name)

	v, err := vm.RunScript(name, "("+src+"\n)")
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, fmt.Errorf("script: compile %s: source evaluates to %s, not a function", name, v.ExportType())
	}
	return &Program{name: name, vm: vm, fn: fn, timeout: timeout}, nil
}

// Call invokes the function with the six-argument mapping contract.
func (p *Program) Call(row, col int, x, z float64, avg *colorspace.Sample, samples []colorspace.Sample) (goja.Value, error) {
	args := []goja.Value{
		p.vm.ToValue(row),
		p.vm.ToValue(col),
		p.vm.ToValue(x),
		p.vm.ToValue(z),
		p.sampleValue(avg),
		p.samplesValue(samples),
	}

	p.vm.ClearInterrupt()
	if p.timeout > 0 {
		dl := startDeadline(p.vm, p.timeout, fmt.Sprintf("%s exceeded %s", p.name, p.timeout))
		defer dl.stop()
	}

	v, err := p.fn(goja.Undefined(), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.name, err)
	}
	return v, nil
}

// deadline interrupts a runtime once its timer fires, unless stop ran first.
// A timer that fires after stop is ignored, so a late interrupt cannot leak
// into the next call on the same runtime.
type deadline struct {
	vm    *goja.Runtime
	msg   string
	timer *time.Timer

	mu      sync.Mutex
	stopped bool
}

func startDeadline(vm *goja.Runtime, d time.Duration, msg string) *deadline {
	dl := &deadline{vm: vm, msg: msg}
	dl.timer = time.AfterFunc(d, dl.fire)
	return dl
}

func (dl *deadline) fire() {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	if !dl.stopped {
		dl.vm.Interrupt(dl.msg)
	}
}

func (dl *deadline) stop() {
	dl.timer.Stop()
	dl.mu.Lock()
	dl.stopped = true
	dl.mu.Unlock()
	dl.vm.ClearInterrupt()
}

func (p *Program) sampleValue(s *colorspace.Sample) goja.Value {
	if s == nil {
		return goja.Null()
	}
	return p.vm.ToValue(sampleObject(*s))
}

func (p *Program) samplesValue(samples []colorspace.Sample) goja.Value {
	arr := make([]interface{}, len(samples))
	for i, s := range samples {
		arr[i] = sampleObject(s)
	}
	return p.vm.NewArray(arr...)
}

func sampleObject(s colorspace.Sample) map[string]interface{} {
	return map[string]interface{}{
		"r": int(s.R),
		"g": int(s.G),
		"b": int(s.B),
		"a": s.A,
		"h": s.H,
		"s": s.S,
		"l": s.L,
	}
}

// installConsole routes console.log/warn/error to monitoring.Logf.
func installConsole(vm *goja.Runtime, name string) {
	console := vm.NewObject()
	for _, level := range []string{"log", "info", "warn", "error"} {
		level := level
		_ = console.Set(level, func(call goja.FunctionCall) goja.Value {
			parts := make([]string, len(call.Arguments))
			for i, a := range call.Arguments {
				parts[i] = a.String()
			}
			monitoring.Logf("%s console.%s: %s", name, level, strings.Join(parts, " "))
			return goja.Undefined()
		})
	}
	_ = vm.Set("console", console)
}
