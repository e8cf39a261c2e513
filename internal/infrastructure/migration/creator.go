package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// The scaffolded files restate the schema conventions every table in
// this project follows, so new migrations start from them instead of
// from a blank file.
const upTemplate = `-- Migration: %[1]s
-- Created: %[2]s
-- Description: %[3]s

-- Conventions:
--   id          UUID PRIMARY KEY (generated by the application)
--   created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
--   updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
--   user data:  created_by_user_id UUID NOT NULL REFERENCES users (id)

`

const downTemplate = `-- Migration: %[1]s (rollback)
-- Created: %[2]s
-- Description: Rollback for %[3]s

-- Drop objects in reverse creation order.

`

// MigrationFile describes a scaffolded up/down pair.
type MigrationFile struct {
	Version  string
	Name     string
	UpPath   string
	DownPath string
}

// CreateMigration scaffolds an up/down SQL pair in migrationsDir. The
// version prefix is the current timestamp, so files sort in creation
// order the way golang-migrate expects.
func CreateMigration(migrationsDir, name, description string) (*MigrationFile, error) {
	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}
	if description == "" {
		description = name
	}

	now := time.Now()
	version := now.Format("20060102150405")
	base := version + "_" + sanitizeName(name)

	mf := &MigrationFile{
		Version:  version,
		Name:     name,
		UpPath:   filepath.Join(migrationsDir, base+".up.sql"),
		DownPath: filepath.Join(migrationsDir, base+".down.sql"),
	}

	created := now.Format(time.RFC3339)
	if err := writeMigrationFile(mf.UpPath, upTemplate, name, created, description); err != nil {
		return nil, err
	}
	if err := writeMigrationFile(mf.DownPath, downTemplate, name, created, description); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, err
	}
	return mf, nil
}

func writeMigrationFile(path, template, name, created, description string) error {
	content := fmt.Sprintf(template, name, created, description)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write migration file %s: %w", path, err)
	}
	return nil
}

// sanitizeName lowercases the migration name and collapses everything
// that is not alphanumeric into single underscores.
func sanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	return b.String()
}

// ListMigrations returns the base names of the migration pairs found in
// migrationsDir, one entry per up file.
func ListMigrations(migrationsDir string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	migrations := make([]string, 0, len(entries)/2)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if base, ok := strings.CutSuffix(entry.Name(), ".up.sql"); ok {
			migrations = append(migrations, base)
		}
	}
	return migrations, nil
}
