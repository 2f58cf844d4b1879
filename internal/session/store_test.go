package session

import (
	"path/filepath"
	"testing"

	"github.com/spinfactor/spinbot/internal/domain"
)

func sampleThreads() Threads {
	return Threads{
		"tiberio": {
			{Role: domain.RoleAssistant, Text: "Tiberio è il framework..."},
			{Role: domain.RoleUser, Text: "come funziona?"},
		},
		domain.GeneralThread: {
			{Role: domain.RoleUser, Text: "ciao"},
		},
	}
}

func assertEqualThreads(t *testing.T, got, want Threads) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("thread count = %d, want %d", len(got), len(want))
	}
	for key, msgs := range want {
		gotMsgs := got[key]
		if len(gotMsgs) != len(msgs) {
			t.Fatalf("thread %q has %d messages, want %d", key, len(gotMsgs), len(msgs))
		}
		for i := range msgs {
			if gotMsgs[i] != msgs[i] {
				t.Errorf("thread %q message %d = %+v, want %+v", key, i, gotMsgs[i], msgs[i])
			}
		}
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() on empty store: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("empty store loaded %d threads, want 0", len(loaded))
	}

	want := sampleThreads()
	if err := store.Save(want); err != nil {
		t.Fatalf("Save(): %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	assertEqualThreads(t, got, want)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.db")

	store, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite(): %v", err)
	}
	defer store.Close()

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() on fresh store: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("fresh store loaded %d threads, want 0", len(loaded))
	}

	want := sampleThreads()
	if err := store.Save(want); err != nil {
		t.Fatalf("Save(): %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	assertEqualThreads(t, got, want)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.db")

	store, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite(): %v", err)
	}
	want := sampleThreads()
	if err := store.Save(want); err != nil {
		t.Fatalf("Save(): %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close(): %v", err)
	}

	reopened, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Load()
	if err != nil {
		t.Fatalf("Load() after reopen: %v", err)
	}
	assertEqualThreads(t, got, want)
}

func TestSQLiteStoreCorruptValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.db")

	store, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite(): %v", err)
	}
	defer store.Close()

	for _, corrupt := range []string{"not json", "null", `["wrong","shape"]`, `42`} {
		if _, err := store.db.Exec(
			`INSERT INTO profile (key, value, updated_at) VALUES (?, ?, 0)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			profileKey, corrupt,
		); err != nil {
			t.Fatalf("seed corrupt value: %v", err)
		}

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() with corrupt value %q: %v", corrupt, err)
		}
		if len(got) != 0 {
			t.Errorf("corrupt value %q loaded %d threads, want 0", corrupt, len(got))
		}
	}
}

func TestDecodeThreadsForeignShape(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"garbage", "xx{"},
		{"json null", "null"},
		{"wrong type", `"string"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeThreads([]byte(tt.data))
			if got == nil {
				t.Fatal("decodeThreads returned nil mapping")
			}
			if len(got) != 0 {
				t.Errorf("decoded %d threads, want 0", len(got))
			}
		})
	}
}
