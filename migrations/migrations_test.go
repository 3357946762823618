package migrations

import (
	"strings"
	"testing"
)

func TestVersions_Ordered(t *testing.T) {
	t.Parallel()

	versions, err := Versions()
	if err != nil {
		t.Fatalf("Versions failed: %v", err)
	}

	want := []string{"000001_users", "000002_queries"}
	if len(versions) != len(want) {
		t.Fatalf("Versions() = %v, want %v", versions, want)
	}
	for i := range want {
		if versions[i] != want[i] {
			t.Errorf("version %d = %s, want %s", i, versions[i], want[i])
		}
	}
}

func TestEveryVersionHasDown(t *testing.T) {
	t.Parallel()

	versions, err := Versions()
	if err != nil {
		t.Fatalf("Versions failed: %v", err)
	}

	for _, v := range versions {
		down, err := DownSQL(v)
		if err != nil {
			t.Errorf("missing down migration for %s: %v", v, err)
			continue
		}
		if !strings.Contains(down, "DROP TABLE") {
			t.Errorf("down migration for %s should drop its table", v)
		}
	}
}

func TestUsersMigration_EmailUnique(t *testing.T) {
	t.Parallel()

	up, err := UpSQL("000001_users")
	if err != nil {
		t.Fatalf("UpSQL failed: %v", err)
	}
	if !strings.Contains(up, "UNIQUE INDEX") || !strings.Contains(up, "(email)") {
		t.Error("users migration must enforce unique email")
	}
}

func TestQueriesMigration_ReferencesUsers(t *testing.T) {
	t.Parallel()

	up, err := UpSQL("000002_queries")
	if err != nil {
		t.Fatalf("UpSQL failed: %v", err)
	}
	if !strings.Contains(up, "REFERENCES users (id)") {
		t.Error("queries must reference users")
	}
}
