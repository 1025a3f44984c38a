package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/officecorner/hr-system/internal/core/domain"
)

func record(code string, ttl time.Duration) domain.OTPRecord {
	return domain.OTPRecord{
		Email:     "a@example.com",
		Purpose:   domain.PurposeVerification,
		Code:      code,
		ExpiresAt: time.Now().Add(ttl),
	}
}

func TestOTPStore_PutGetDelete(t *testing.T) {
	s := NewOTPStore()
	defer s.Close()
	ctx := context.Background()

	if err := s.Put(ctx, "k", record("123456", time.Minute), time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Code != "123456" {
		t.Fatalf("unexpected record: %+v", got)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, domain.ErrOTPNotFound) {
		t.Fatalf("expected ErrOTPNotFound after delete, got %v", err)
	}
}

func TestOTPStore_GetMissing(t *testing.T) {
	s := NewOTPStore()
	defer s.Close()

	if _, err := s.Get(context.Background(), "absent"); !errors.Is(err, domain.ErrOTPNotFound) {
		t.Fatalf("expected ErrOTPNotFound, got %v", err)
	}
}

func TestOTPStore_ExpiryByTimer(t *testing.T) {
	s := NewOTPStore()
	defer s.Close()
	ctx := context.Background()

	if err := s.Put(ctx, "k", record("123456", 20*time.Millisecond), 20*time.Millisecond); err != nil {
		t.Fatalf("Put: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := s.Get(ctx, "k"); errors.Is(err, domain.ErrOTPNotFound) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("entry never expired")
}

func TestOTPStore_StaleRecordNotReturned(t *testing.T) {
	s := NewOTPStore()
	defer s.Close()
	ctx := context.Background()

	// Long timer TTL but an ExpiresAt already in the past: Get must treat the
	// record as gone rather than hand out a stale code.
	stale := record("123456", -time.Minute)
	if err := s.Put(ctx, "k", stale, time.Hour); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, domain.ErrOTPNotFound) {
		t.Fatalf("expected ErrOTPNotFound for stale record, got %v", err)
	}
}

func TestOTPStore_PutReplaces(t *testing.T) {
	s := NewOTPStore()
	defer s.Close()
	ctx := context.Background()

	_ = s.Put(ctx, "k", record("111111", time.Minute), time.Minute)
	_ = s.Put(ctx, "k", record("222222", time.Minute), time.Minute)

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Code != "222222" {
		t.Fatalf("expected replacement code, got %s", got.Code)
	}
}

func TestOTPStore_StaleTimerDoesNotDeleteReplacement(t *testing.T) {
	s := NewOTPStore()
	defer s.Close()
	ctx := context.Background()

	_ = s.Put(ctx, "k", record("111111", time.Minute), time.Minute)
	s.mu.Lock()
	old := s.entries["k"]
	s.mu.Unlock()

	// Replace the code, then fire the old entry's expiry as if its timer had
	// already been in flight when Put stopped it. The fresh code must survive.
	_ = s.Put(ctx, "k", record("222222", time.Minute), time.Minute)
	s.expire("k", old)

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Code != "222222" {
		t.Fatalf("stale timer removed the replacement, got %+v", got)
	}
}

func TestOTPStore_CloseIdempotent(t *testing.T) {
	s := NewOTPStore()
	s.Close()
	s.Close()
}
