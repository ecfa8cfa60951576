package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tribunen/billettvakt/entities"
	"github.com/tribunen/billettvakt/utils"
)

// Store defines the write side of snapshot persistence.
// Implementations: FileStore, PostgresStore
type Store interface {
	WriteSnapshot(ctx context.Context, eventTitle string, snap entities.Snapshot) error
}

// FileStore persists one JSON file per capture under a per-event directory.
// Snapshots are immutable once written; ordering is by modification time.
type FileStore struct {
	Root string
	mu   sync.Mutex
}

func NewFileStore(root string) *FileStore {
	return &FileStore{Root: root}
}

// EventDir returns the event's directory under the store root, creating it
// on first use. The directory name is a filesystem-safe transform of the
// event title.
func (f *FileStore) EventDir(eventTitle string) (string, error) {
	dir := filepath.Join(f.Root, utils.SanitizeEventDir(eventTitle))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create event directory: %w", err)
	}
	return dir, nil
}

func (f *FileStore) WriteSnapshot(ctx context.Context, eventTitle string, snap entities.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	dir, err := f.EventDir(eventTitle)
	if err != nil {
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	filename := fmt.Sprintf("results_%s.json", utils.FileTimestamp())
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	fmt.Printf("Json file saved to %s\n", filepath.Join(filepath.Base(f.Root), filepath.Base(dir), filename))
	return nil
}

// WriteRaw dumps arbitrary data into an event directory, for debug captures
// of the counted sections before aggregation.
func (f *FileStore) WriteRaw(eventTitle string, v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	dir, err := f.EventDir(eventTitle)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal debug data: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("results_%s.json", utils.FileTimestamp()))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write debug data: %w", err)
	}
	return nil
}

// LatestPair returns the newest snapshot for an event and, when a second
// capture exists, the one before it. A missing prior is not an error; a
// malformed snapshot file is, since the operator must not receive a
// fabricated trend report.
func (f *FileStore) LatestPair(eventTitle string) (latest, prior *entities.Snapshot, err error) {
	dir, err := f.EventDir(eventTitle)
	if err != nil {
		return nil, nil, err
	}
	files, err := sortedByModTime(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no snapshots found for %q", eventTitle)
	}

	latest, err = readSnapshot(files[0])
	if err != nil {
		return nil, nil, err
	}
	if len(files) > 1 {
		prior, err = readSnapshot(files[1])
		if err != nil {
			return nil, nil, err
		}
	}
	return latest, prior, nil
}

func sortedByModTime(dir string) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	type fileWithTime struct {
		path    string
		modTime int64
	}
	var files []fileWithTime
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		files = append(files, fileWithTime{
			path:    filepath.Join(dir, entry.Name()),
			modTime: info.ModTime().UnixNano(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].modTime > files[j].modTime })

	paths := make([]string, len(files))
	for i, file := range files {
		paths[i] = file.path
	}
	return paths, nil
}

func readSnapshot(path string) (*entities.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var snap entities.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("corrupt snapshot %s: %w", path, err)
	}
	return &snap, nil
}

// PostgresStore mirrors snapshots into the category_totals table, one row
// per category per capture.
type PostgresStore struct {
	Pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{Pool: pool}
}

func (p *PostgresStore) WriteSnapshot(ctx context.Context, eventTitle string, snap entities.Snapshot) error {
	for _, category := range snap.Categories {
		totals, ok := snap.Totals[category]
		if !ok {
			continue
		}
		_, err := p.Pool.Exec(ctx, `
			INSERT INTO category_totals (event_title, category, section_amount, sold_seats, available_seats, locked_seats, captured_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			eventTitle,
			category,
			totals.SectionAmount,
			totals.SoldSeats,
			totals.AvailableSeats,
			totals.LockedSeats,
			snap.General.Time,
		)
		if err != nil {
			return fmt.Errorf("error inserting category totals: %w", err)
		}
	}
	return nil
}
