package mirror

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Julnar1/store-sentry-admin-dashboard/session"
)

func testRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisStore(rdb, DefaultRedisKey)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := testRedisStore(t)
	ctx := context.Background()

	rec := Record{
		Token:     []byte{0x01, 0x02, 0x03},
		Role:      session.RoleManager,
		UpdatedAt: time.Now().Truncate(time.Millisecond),
	}
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got.Token) != string(rec.Token) {
		t.Errorf("Token = %v; want %v", got.Token, rec.Token)
	}
	if got.Role != session.RoleManager {
		t.Errorf("Role = %s; want manager", got.Role)
	}
	if !got.UpdatedAt.Equal(rec.UpdatedAt) {
		t.Errorf("UpdatedAt = %s; want %s", got.UpdatedAt, rec.UpdatedAt)
	}
}

func TestRedisStoreSaveOverwrites(t *testing.T) {
	store := testRedisStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, Record{Token: []byte("old"), Role: session.RoleAdmin, UpdatedAt: time.Now()}); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if err := store.Save(ctx, Record{Token: []byte("new"), Role: session.RoleManager, UpdatedAt: time.Now()}); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got.Token) != "new" || got.Role != session.RoleManager {
		t.Errorf("Load = %+v; want the overwritten record", got)
	}
}

func TestRedisStoreLoadEmpty(t *testing.T) {
	store := testRedisStore(t)
	if _, err := store.Load(context.Background()); !errors.Is(err, ErrNoStoredSession) {
		t.Errorf("Load of empty store = %v; want ErrNoStoredSession", err)
	}
}

func TestRedisStoreDelete(t *testing.T) {
	store := testRedisStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, Record{Token: []byte("x"), Role: session.RoleAdmin, UpdatedAt: time.Now()}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// Delete twice: the second is a no-op, not an error.
	for i := 0; i < 2; i++ {
		if err := store.Delete(ctx); err != nil {
			t.Fatalf("Delete #%d failed: %v", i+1, err)
		}
	}
	if _, err := store.Load(ctx); !errors.Is(err, ErrNoStoredSession) {
		t.Errorf("Load after Delete = %v; want ErrNoStoredSession", err)
	}
}

func TestMemoryStoreCopiesToken(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	token := []byte("mutable")
	if err := store.Save(ctx, Record{Token: token, Role: session.RoleAdmin, UpdatedAt: time.Now()}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	token[0] = 'X'

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got.Token) != "mutable" {
		t.Errorf("Token = %q; caller mutation leaked into the store", got.Token)
	}
}
