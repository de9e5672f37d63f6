package classify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	beerr "github.com/shi-rudo/base-error-go/pkg/errors"
)

func TestError_Nil(t *testing.T) {
	if Error(nil, "op failed") != nil {
		t.Error("Error(nil) should return nil")
	}
}

func TestError_Passthrough(t *testing.T) {
	already := beerr.New(beerr.CodeNotFound, "missing")
	got := Error(already, "op failed")
	if got != already {
		t.Error("an already-classified error should pass through unchanged")
	}
}

func TestError_ContextAndNetwork(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      beerr.Code
		retryable bool
	}{
		{"canceled", context.Canceled, beerr.CodeInternal, false},
		{"deadline exceeded", context.DeadlineExceeded, beerr.CodeTimeout, true},
		{"wrapped deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), beerr.CodeTimeout, true},
		{"connection refused", syscall.ECONNREFUSED, beerr.CodeUnavailable, true},
		{"connection reset", fmt.Errorf("read: %w", syscall.ECONNRESET), beerr.CodeUnavailable, true},
		{
			"op error",
			&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("no route to host")},
			beerr.CodeUnavailable,
			true,
		},
		{"unknown", errors.New("something odd"), beerr.CodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Error(tt.err, "op failed")
			if got.Code != tt.code {
				t.Errorf("code = %v, want %v", got.Code, tt.code)
			}
			if got.Retryable != tt.retryable {
				t.Errorf("retryable = %v, want %v", got.Retryable, tt.retryable)
			}
			if !errors.Is(got, tt.err) {
				t.Error("original error should be reachable via errors.Is")
			}
		})
	}
}

func TestError_PreservesMessage(t *testing.T) {
	got := Error(errors.New("boom"), "loading profile failed")
	if got.Message != "loading profile failed" {
		t.Errorf("message = %q", got.Message)
	}
}
