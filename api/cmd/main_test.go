package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/rs/zerolog"
)

type fakeServer struct {
	addr string

	listenErr   error
	shutdownErr error

	listenCalled   bool
	shutdownCalled bool
	closeCalled    bool
}

func (f *fakeServer) ListenAndServe() error {
	f.listenCalled = true
	return f.listenErr
}

func (f *fakeServer) Shutdown(ctx context.Context) error {
	f.shutdownCalled = true
	return f.shutdownErr
}

func (f *fakeServer) Close() error {
	f.closeCalled = true
	return nil
}

func (f *fakeServer) Addr() string { return f.addr }

func TestRun_BootstrapFailure_ExitsNonZero(t *testing.T) {
	sigCh := make(chan os.Signal, 1)

	build := func() (httpServer, func(), error) {
		return nil, func() {}, errors.New("boom")
	}

	if got := Run(build, sigCh, zerolog.Nop()); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestRun_Signal_GracefulShutdown(t *testing.T) {
	// Pre-send the signal so Run takes the shutdown path deterministically.
	sigCh := make(chan os.Signal, 1)
	sigCh <- os.Interrupt

	fs := &fakeServer{addr: ":0", listenErr: http.ErrServerClosed}
	cleanupCalled := false
	build := func() (httpServer, func(), error) {
		return fs, func() { cleanupCalled = true }, nil
	}

	if got := Run(build, sigCh, zerolog.Nop()); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if !fs.listenCalled || !fs.shutdownCalled {
		t.Fatalf("expected listen+shutdown, got %+v", fs)
	}
	if fs.closeCalled {
		t.Fatalf("graceful path must not force-close")
	}
	if !cleanupCalled {
		t.Fatalf("expected cleanup to run")
	}
}

func TestRun_ListenerCrash_ExitsNonZero(t *testing.T) {
	sigCh := make(chan os.Signal, 1)

	fs := &fakeServer{addr: ":0", listenErr: errors.New("bind failed")}
	cleanupCalled := false
	build := func() (httpServer, func(), error) {
		return fs, func() { cleanupCalled = true }, nil
	}

	if got := Run(build, sigCh, zerolog.Nop()); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if !cleanupCalled {
		t.Fatalf("expected cleanup to run on crash")
	}
}

func TestRun_ShutdownFailure_ForcesClose(t *testing.T) {
	sigCh := make(chan os.Signal, 1)
	sigCh <- os.Interrupt

	fs := &fakeServer{
		addr:        ":0",
		listenErr:   http.ErrServerClosed,
		shutdownErr: errors.New("connections stuck"),
	}
	build := func() (httpServer, func(), error) {
		return fs, func() {}, nil
	}

	if got := Run(build, sigCh, zerolog.Nop()); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if !fs.closeCalled {
		t.Fatalf("expected force close after failed shutdown")
	}
}
