package main

import (
	"errors"
	"os"
	"syscall"
	"testing"
)

func TestWaitForShutdown(t *testing.T) {
	t.Run("server error is returned", func(t *testing.T) {
		errCh := make(chan error, 1)
		errCh <- errors.New("address in use")

		err := waitForShutdown(errCh, make(chan os.Signal))
		if err == nil || err.Error() != "address in use" {
			t.Errorf("waitForShutdown() = %v, want address in use", err)
		}
	})

	t.Run("nil server return is still a failure", func(t *testing.T) {
		errCh := make(chan error, 1)
		errCh <- nil

		if err := waitForShutdown(errCh, make(chan os.Signal)); err == nil {
			t.Error("expected an error when the server stops")
		}
	})

	t.Run("signal returns nil", func(t *testing.T) {
		sigCh := make(chan os.Signal, 1)
		sigCh <- syscall.SIGTERM

		if err := waitForShutdown(make(chan error), sigCh); err != nil {
			t.Errorf("waitForShutdown() = %v, want nil", err)
		}
	})
}

func TestLocalURL(t *testing.T) {
	tests := map[string]string{
		":8080":          "http://localhost:8080",
		"127.0.0.1:9000": "http://127.0.0.1:9000",
	}
	for addr, want := range tests {
		if got := localURL(addr); got != want {
			t.Errorf("localURL(%q) = %q, want %q", addr, got, want)
		}
	}
}
