//go:build integration

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/rs/zerolog"

	"agendesaude/internal/domain"
	"agendesaude/internal/storage/kvstore"
	mysqlkv "agendesaude/internal/storage/mysql"
)

// startMySQL spins up an isolated MySQL container and returns a connected
// handle with the kv schema applied.
func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=agendesaude",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/agendesaude?parseTime=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	kv := mysqlkv.New(db)
	if err := kv.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return db
}

func TestKVRoundTrip(t *testing.T) {
	db := startMySQL(t)
	kv := mysqlkv.New(db)
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if ok {
		t.Fatal("missing key reported present")
	}

	if err := kv.Set(ctx, "clinicas", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := kv.Get(ctx, "clinicas")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(v) != `[{"id":"1"}]` {
		t.Fatalf("unexpected value: %s", v)
	}

	// Set on an existing key overwrites.
	if err := kv.Set(ctx, "clinicas", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, _, err = kv.Get(ctx, "clinicas")
	if err != nil {
		t.Fatalf("get after overwrite: %v", err)
	}
	if string(v) != `[]` {
		t.Fatalf("overwrite not applied: %s", v)
	}
}

func TestStoreOverMySQL(t *testing.T) {
	db := startMySQL(t)
	store := kvstore.New(mysqlkv.New(db), zerolog.Nop(), nil)
	ctx := context.Background()

	if err := store.EnsureSeeded(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var clinics []domain.Clinic
	if err := store.Load(ctx, kvstore.CollectionClinics, &clinics); err != nil {
		t.Fatalf("load clinics: %v", err)
	}
	if len(clinics) != len(kvstore.SeedClinics()) {
		t.Fatalf("expected seed directory, got %d clinics", len(clinics))
	}

	// Corrupt the primary row directly; the backup row recovers it.
	if _, err := db.ExecContext(ctx, "UPDATE kv SET v = ? WHERE k = ?", []byte("{{{not json"), kvstore.CollectionClinics); err != nil {
		t.Fatalf("corrupt primary: %v", err)
	}
	clinics = nil
	if err := store.Load(ctx, kvstore.CollectionClinics, &clinics); err != nil {
		t.Fatalf("load after corruption: %v", err)
	}
	if len(clinics) != len(kvstore.SeedClinics()) {
		t.Fatalf("backup fallback failed, got %d clinics", len(clinics))
	}
}
