package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"bikerent/internal/domain"
	"bikerent/internal/store"
)

func TestFileStore_SetGetDelete_OK(t *testing.T) {
	ctx := context.Background()
	var kv domain.KVStore = store.NewFileStore(t.TempDir())

	if _, ok, err := kv.Get(ctx, "authToken"); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}
	if err := kv.Set(ctx, "authToken", "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := kv.Get(ctx, "authToken")
	if err != nil || !ok || got != "abc" {
		t.Fatalf("get = %q ok=%v err=%v", got, ok, err)
	}
	if err := kv.Delete(ctx, "authToken"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "authToken"); ok {
		t.Fatal("value survived delete")
	}
	if err := kv.Delete(ctx, "authToken"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	home := t.TempDir()

	if err := store.NewFileStore(home).Set(ctx, "authToken", "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := store.NewFileStore(home).Get(ctx, "authToken")
	if err != nil || !ok || got != "abc" {
		t.Fatalf("reopened get = %q ok=%v err=%v", got, ok, err)
	}
}

func TestFileStore_DeleteLastKeyRemovesFile(t *testing.T) {
	ctx := context.Background()
	s := store.NewFileStore(t.TempDir())
	if err := s.Set(ctx, "authToken", "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Delete(ctx, "authToken"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Fatalf("session file still present: %v", err)
	}
}

func TestSealedFileStore_RoundTrip_NoPlaintextOnDisk(t *testing.T) {
	ctx := context.Background()
	home := t.TempDir()
	s := store.NewSealedFileStore(home, "correct horse")

	if err := s.Set(ctx, "authToken", "very-secret-token"); err != nil {
		t.Fatalf("set: %v", err)
	}
	raw, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if strings.Contains(string(raw), "very-secret-token") {
		t.Fatal("token written in plaintext")
	}
	got, ok, err := store.NewSealedFileStore(home, "correct horse").Get(ctx, "authToken")
	if err != nil || !ok || got != "very-secret-token" {
		t.Fatalf("get = %q ok=%v err=%v", got, ok, err)
	}
}

func TestSealedFileStore_WrongPassphrase_Fails(t *testing.T) {
	ctx := context.Background()
	home := t.TempDir()
	if err := store.NewSealedFileStore(home, "correct").Set(ctx, "authToken", "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	_, _, err := store.NewSealedFileStore(home, "wrong").Get(ctx, "authToken")
	if !errors.Is(err, store.ErrWrongPassphrase) {
		t.Fatalf("want ErrWrongPassphrase, got %v", err)
	}
}

func TestSealedFileStore_RejectsTamperedScryptParams(t *testing.T) {
	ctx := context.Background()
	home := t.TempDir()
	s := store.NewSealedFileStore(home, "pass")
	if err := s.Set(ctx, "authToken", "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}

	for _, field := range []string{"scrypt_N", "scrypt_r", "scrypt_p"} {
		raw, err := os.ReadFile(s.Path())
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var f struct {
			Sealed bool                                  `json:"sealed"`
			Values map[string]map[string]json.RawMessage `json:"values"`
		}
		if err := json.Unmarshal(raw, &f); err != nil {
			t.Fatalf("decode: %v", err)
		}
		orig := f.Values["authToken"][field]
		f.Values["authToken"][field] = json.RawMessage(`1073741824`)
		tampered, _ := json.Marshal(f)
		if err := os.WriteFile(s.Path(), tampered, 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}

		_, _, err = s.Get(ctx, "authToken")
		if !errors.Is(err, store.ErrWrongPassphrase) {
			t.Fatalf("%s tampered: want ErrWrongPassphrase, got %v", field, err)
		}

		f.Values["authToken"][field] = orig
		restored, _ := json.Marshal(f)
		if err := os.WriteFile(s.Path(), restored, 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if v, ok, err := s.Get(ctx, "authToken"); err != nil || !ok || v != "abc" {
		t.Fatalf("restored file: %q ok=%v err=%v", v, ok, err)
	}
}

func TestFileStore_RefusesSealedFileWithoutPassphrase(t *testing.T) {
	ctx := context.Background()
	home := t.TempDir()
	if err := store.NewSealedFileStore(home, "pass").Set(ctx, "authToken", "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, _, err := store.NewFileStore(home).Get(ctx, "authToken"); err == nil {
		t.Fatal("expected error reading a sealed file without a passphrase")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	_ = s.Set(ctx, "k", "v")
	if v, ok, _ := s.Get(ctx, "k"); !ok || v != "v" {
		t.Fatalf("get = %q ok=%v", v, ok)
	}
	_ = s.Delete(ctx, "k")
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatal("value survived delete")
	}
}
