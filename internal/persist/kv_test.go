package persist

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()

	sq, err := NewSQLiteKV(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteKV: %v", err)
	}
	sqFile, err := NewSQLiteKV(filepath.Join(t.TempDir(), "sqlite"))
	if err != nil {
		t.Fatalf("NewSQLiteKV file: %v", err)
	}
	stores := map[string]Store{
		"file":        NewFileKV(filepath.Join(t.TempDir(), "data")),
		"sqlite":      sq,
		"sqlite-file": sqFile,
		"memory":      NewMemoryKV(),
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestKVContract(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get missing err = %v, want ErrNotFound", err)
			}

			if err := s.Set("k", []byte(`{"a":1}`)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, err := s.Get("k")
			if err != nil || string(got) != `{"a":1}` {
				t.Fatalf("Get = %q, %v", got, err)
			}

			// Overwrite with a shorter value leaves no trailing bytes.
			if err := s.Set("k", []byte(`[]`)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, _ = s.Get("k")
			if string(got) != `[]` {
				t.Errorf("after overwrite Get = %q", got)
			}

			if err := s.Remove("k"); err != nil {
				t.Fatalf("Remove: %v", err)
			}
			if _, err := s.Get("k"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after Remove err = %v", err)
			}
			if err := s.Remove("k"); err != nil {
				t.Errorf("Remove twice: %v", err)
			}
		})
	}
}

func TestKeyValidation(t *testing.T) {
	for name, s := range backends(t) {
		if err := s.Set("../escape", []byte("x")); err == nil {
			t.Errorf("%s: expected invalid key error", name)
		}
	}
}

func TestFileKVLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := NewFileKV(dir)
	if err := s.Set(KeySession, []byte(`{}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, KeySession+".json")); err != nil {
		t.Errorf("expected value file: %v", err)
	}
	if s.Dir() != dir {
		t.Errorf("Dir = %q", s.Dir())
	}
}

func TestFileKVReplacesWholeFile(t *testing.T) {
	dir := t.TempDir()
	s := NewFileKV(dir)
	if err := s.Set(KeySession, []byte(`"a much longer first value"`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(KeySession, []byte(`"short"`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := s.Get(KeySession)
	if err != nil || string(got) != `"short"` {
		t.Errorf("Get = %q, %v", got, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) != 2 || names[0] != ".lock" || names[1] != KeySession+".json" {
		t.Errorf("dir = %v, want only the lock and value files", names)
	}
}

func TestFileKVConcurrentWrites(t *testing.T) {
	s := NewFileKV(t.TempDir())
	values := []string{`"aaaaaaaaaaaaaaaaaaaa"`, `"b"`, `"cccccccccc"`}

	var wg sync.WaitGroup
	for i := range 30 {
		wg.Add(1)
		go func(v string) {
			defer wg.Done()
			_ = s.Set("race", []byte(v))
		}(values[i%len(values)])
	}
	wg.Wait()

	got, err := s.Get("race")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	ok := false
	for _, v := range values {
		if string(got) == v {
			ok = true
		}
	}
	if !ok {
		t.Errorf("torn value %q", got)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		backend Backend
		wantErr bool
	}{
		{BackendFile, false},
		{"", false},
		{BackendSQLite, false},
		{BackendMemory, false},
		{"postgres", true},
	}
	for _, tt := range tests {
		s, err := Open(Options{Backend: tt.backend, Dir: dir})
		if (err != nil) != tt.wantErr {
			t.Errorf("Open(%q) err = %v, wantErr %v", tt.backend, err, tt.wantErr)
		}
		if s != nil {
			_ = s.Close()
		}
	}
}

func TestRedisRequiresAddress(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	if _, err := Open(Options{Backend: BackendRedis}); err == nil {
		t.Error("expected error without an address")
	}
}

func TestRedisUnreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("dials the network")
	}
	// Port 1 on loopback refuses connections.
	if _, err := NewRedisKV("127.0.0.1:1", "ccraft:"); err == nil {
		t.Error("expected ping failure")
	}
}
