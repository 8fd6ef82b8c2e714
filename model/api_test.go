package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorResponseMatchesThroughWrapping(t *testing.T) {
	base := NotFound("account not found")
	wrapped := fmt.Errorf("lookup failed: %w", base)

	var resp *ErrorResponse
	if !errors.As(wrapped, &resp) {
		t.Fatalf("expected errors.As to find *ErrorResponse in %v", wrapped)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("expected status 404, got %d", resp.StatusCode)
	}

	var other *ErrorResponse
	if errors.As(errors.New("plain"), &other) {
		t.Fatal("plain error should not match *ErrorResponse")
	}
}
