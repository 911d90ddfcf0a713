package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/orderlens/orderlens/pkg/lifecycle"
)

func TestStartupReadiness(t *testing.T) {
	c := lifecycle.New()

	if c.Ready() {
		t.Fatal("coordinator ready before startup hooks ran")
	}

	var ran atomic.Bool
	c.OnStartup(func() {
		time.Sleep(10 * time.Millisecond)
		ran.Store(true)
	})

	c.WaitForStartup()

	if !ran.Load() {
		t.Error("startup hook did not run")
	}
	if !c.Ready() {
		t.Error("coordinator not ready after WaitForStartup")
	}
}

func TestShutdownCancelsContext(t *testing.T) {
	c := lifecycle.New()

	var cleaned atomic.Bool
	c.OnShutdown(func() {
		<-c.Context().Done()
		cleaned.Store(true)
	})

	if err := c.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if !cleaned.Load() {
		t.Error("shutdown hook did not complete")
	}

	select {
	case <-c.Context().Done():
	default:
		t.Error("context not cancelled after shutdown")
	}
}

func TestShutdownTimeout(t *testing.T) {
	c := lifecycle.New()

	block := make(chan struct{})
	defer close(block)
	c.OnShutdown(func() {
		<-block
	})

	if err := c.Shutdown(20 * time.Millisecond); err == nil {
		t.Error("expected timeout error from stuck shutdown hook")
	}
}
