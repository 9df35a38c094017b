package monitoring

import (
	"fmt"
	"log"
	"sync"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf and
// receives mapping-function faults, compile errors and script console output.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Capture redirects Logf into the returned slice until restore is called.
// Intended for tests that assert on diagnostics. Safe for concurrent
// loggers; read lines only after the logging goroutines are done.
func Capture() (lines *[]string, restore func()) {
	original := Logf
	var (
		mu       sync.Mutex
		captured []string
	)
	Logf = func(format string, v ...interface{}) {
		line := fmt.Sprintf(format, v...)
		mu.Lock()
		captured = append(captured, line)
		mu.Unlock()
	}
	return &captured, func() { Logf = original }
}
