package evtq

import (
	"testing"
)

func TestLog(t *testing.T) {
	Info("hello %s", "stdout")

	log, err := NewLog(t.TempDir())
	if err != nil {
		t.Fatalf("NewLog: %v", err)
	}
	for i := 0; i < 10; i++ {
		log.Debug("hello %s %d", "debug", i)
		log.Info("hello %s %d", "info", i)
		log.Warn("hello %s %d", "warn", i)
		log.Error("hello %s %d", "error", i)
	}
	// package-level funcs follow the last allocated Log
	for i := 0; i < 10; i++ {
		Debug("append %s %d", "debug", i)
		Info("append %s %d", "info", i)
		Warn("append %s %d", "warn", i)
		Error("append %s %d", "error", i)
	}

	log1, err := NewLog("")
	if err != nil {
		t.Fatalf("NewLog stdout: %v", err)
	}
	for i := 0; i < 2; i++ {
		log1.Debug("hello %s %d", "debug", i)
		log1.Error("hello %s %d", "error", i)
	}
}
