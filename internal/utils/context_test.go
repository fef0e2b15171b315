package utils

import (
	"context"
	"testing"
)

func TestContextKey_String(t *testing.T) {
	if got := TraceIDCtxKey.String(); got != "traceID" {
		t.Errorf("expected 'traceID', got '%s'", got)
	}
}

func TestGetTraceIDFromContext_Present(t *testing.T) {
	ctx := WithTraceID(context.Background(), "0190a1b2-c3d4")

	got, ok := GetTraceIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok == true")
	}
	if got != "0190a1b2-c3d4" {
		t.Errorf("expected '0190a1b2-c3d4', got '%s'", got)
	}
}

func TestGetTraceIDFromContext_Missing(t *testing.T) {
	if _, ok := GetTraceIDFromContext(context.Background()); ok {
		t.Error("expected ok == false for empty context")
	}
}

func TestGetTraceIDFromContext_WrongTypeOrEmpty(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDCtxKey, 42)
	if _, ok := GetTraceIDFromContext(ctx); ok {
		t.Error("expected ok == false for non-string value")
	}

	if _, ok := GetTraceIDFromContext(WithTraceID(context.Background(), "")); ok {
		t.Error("expected ok == false for empty trace id")
	}
}

func TestContextKey_NoCollisionWithPlainString(t *testing.T) {
	ctx := context.WithValue(context.Background(), "traceID", "plain") //nolint:staticcheck

	if _, ok := GetTraceIDFromContext(ctx); ok {
		t.Error("a plain string key must not collide with TraceIDCtxKey")
	}
}
