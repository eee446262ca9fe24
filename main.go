package main

import (
	"os"
	"runtime/debug"

	"github.com/mezonai/syncstate/cmd"
	"github.com/mezonai/syncstate/logx"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			_ = logx.Errorf("SYNCSTATE CRASHED: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	cmd.Execute()
}
