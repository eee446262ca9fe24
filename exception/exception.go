package exception

import (
	"fmt"
	"runtime/debug"

	"github.com/mezonai/syncstate/logx"
	"github.com/mezonai/syncstate/monitoring"
)

// SafeGo runs fn in a goroutine and logs a recovered panic instead of crashing
func SafeGo(name string, fn func()) {
	go func() {
		defer recoverPanic(name)
		fn()
	}()
}

func recoverPanic(name string) {
	if r := recover(); r != nil {
		monitoring.IncreasePanicCount()
		logx.Error("PANIC", fmt.Sprintf("panic in %s: %v\n%s", name, r, debug.Stack()))
	}
}
