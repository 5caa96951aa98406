package service

import (
	"testing"
	"time"

	"github.com/and161185/admin-console/internal/errs"
	"github.com/and161185/admin-console/internal/model"
	"github.com/and161185/admin-console/internal/storage"
	"github.com/and161185/admin-console/internal/storage/memory"
)

var testPrincipal = model.Principal{Name: "Jane", Email: "jane@x.com", Role: model.RoleUser}

func TestSession_SetLoadRoundTrip(t *testing.T) {
	t.Parallel()
	st := memory.New()
	s := NewSession(st, []byte("key"), time.Hour)

	if err := s.Set(testPrincipal); err != nil {
		t.Fatalf("set: %v", err)
	}

	reloaded := NewSession(st, []byte("key"), time.Hour)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	p, ok := reloaded.Current()
	if !ok || p != testPrincipal {
		t.Fatalf("want %+v, got %+v ok=%v", testPrincipal, p, ok)
	}
}

func TestSession_AbsentRecordMeansNoSession(t *testing.T) {
	t.Parallel()
	s := NewSession(memory.New(), []byte("key"), time.Hour)
	if err := s.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := s.Current(); ok {
		t.Fatal("session conjured from empty storage")
	}
}

func TestSession_ExpiredTokenRejected(t *testing.T) {
	t.Parallel()
	st := memory.New()
	expired := NewSession(st, []byte("key"), -time.Minute)
	if err := expired.Set(testPrincipal); err != nil {
		t.Fatalf("set: %v", err)
	}

	s := NewSession(st, []byte("key"), time.Hour)
	if err := s.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := s.Current(); ok {
		t.Fatal("expired session accepted")
	}
}

func TestSession_TamperedTokenRejectedAndCleared(t *testing.T) {
	t.Parallel()
	st := memory.New()
	if err := st.Set(storage.KeySession, "not-a-token"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s := NewSession(st, []byte("key"), time.Hour)
	if err := s.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := s.Current(); ok {
		t.Fatal("tampered session accepted")
	}
	// The stale record was dropped.
	if _, err := st.Get(storage.KeySession); err == nil {
		t.Fatal("stale session record not cleared")
	}
}

func TestSession_ForeignKeyRejected(t *testing.T) {
	t.Parallel()
	st := memory.New()
	other := NewSession(st, []byte("other-key"), time.Hour)
	if err := other.Set(testPrincipal); err != nil {
		t.Fatalf("set: %v", err)
	}

	s := NewSession(st, []byte("key"), time.Hour)
	if err := s.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := s.Current(); ok {
		t.Fatal("session signed with a foreign key accepted")
	}
}

func TestSession_SetFailsWhenStorageDown(t *testing.T) {
	t.Parallel()
	st := memory.New()
	s := NewSession(st, []byte("key"), time.Hour)

	st.FailWith(errs.ErrStorageUnavailable)
	if err := s.Set(testPrincipal); err == nil {
		t.Fatal("want error from broken storage")
	}
	// Memory must not claim a session the store never accepted.
	if _, ok := s.Current(); ok {
		t.Fatal("session established despite failed persist")
	}
}

func TestSession_Clear(t *testing.T) {
	t.Parallel()
	st := memory.New()
	s := NewSession(st, []byte("key"), time.Hour)
	if err := s.Set(testPrincipal); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := s.Current(); ok {
		t.Fatal("session survived clear")
	}
	if _, err := st.Get(storage.KeySession); err == nil {
		t.Fatal("persisted session survived clear")
	}
}
