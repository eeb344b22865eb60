package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/VirajSanda/football-poster/app/news"
)

// newsRepository handles database operations for news records
type newsRepository struct {
	db *DB
}

// NewNewsRepository creates a new news repository
func NewNewsRepository(db *DB) NewsRepository {
	return &newsRepository{db: db}
}

const newsColumns = `id, title, summary, url, image_url, video_url, source,
	hash, seq, posted, fb_post_id, scheduled_time, posted_at, created_at`

// GetExistingURLs returns the set of every stored article URL
func (r *newsRepository) GetExistingURLs() (map[string]struct{}, error) {
	rows, err := r.db.Query(`SELECT url FROM news`)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing URLs: %w", err)
	}
	defer rows.Close()

	urls := make(map[string]struct{})
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan URL row: %w", err)
		}
		urls[url] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating URL rows: %w", err)
	}

	return urls, nil
}

// GetExistingHashes returns the set of every stored content hash
func (r *newsRepository) GetExistingHashes() (map[string]struct{}, error) {
	rows, err := r.db.Query(`SELECT hash FROM news`)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing hashes: %w", err)
	}
	defer rows.Close()

	hashes := make(map[string]struct{})
	for rows.Next() {
		var hash string
		if err := rows.Scan(&hash); err != nil {
			return nil, fmt.Errorf("failed to scan hash row: %w", err)
		}
		hashes[hash] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hash rows: %w", err)
	}

	return hashes, nil
}

// GetMaxSeq returns the highest assigned sequence number, or 0 when the
// table is empty
func (r *newsRepository) GetMaxSeq() (int64, error) {
	var maxSeq int64
	err := r.db.QueryRow(`SELECT COALESCE(MAX(seq), 0) FROM news`).Scan(&maxSeq)
	if err != nil {
		return 0, fmt.Errorf("failed to get max seq: %w", err)
	}
	return maxSeq, nil
}

// InsertNews stores a new record and returns its database ID
func (r *newsRepository) InsertNews(rec *news.Record) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO news (title, summary, url, image_url, video_url, source, hash, seq, posted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)
	`, rec.Title, rec.Summary, rec.URL, rec.ImageURL, rec.VideoURL, rec.Source, rec.Hash, rec.Seq)
	if err != nil {
		return 0, fmt.Errorf("failed to insert news: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted news ID: %w", err)
	}

	return id, nil
}

// GetUnscheduled returns unposted records without a scheduled time, in
// insertion order
func (r *newsRepository) GetUnscheduled() ([]news.Record, error) {
	rows, err := r.db.Query(`
		SELECT `+newsColumns+`
		FROM news
		WHERE posted = 0 AND scheduled_time IS NULL
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get unscheduled news: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// GetLastScheduledTime returns the latest scheduled_time across all records,
// or nil when nothing has been scheduled yet
func (r *newsRepository) GetLastScheduledTime() (*time.Time, error) {
	// MAX() strips the column's time affinity under the sqlite driver, so
	// select the raw column instead.
	var last sql.NullTime
	err := r.db.QueryRow(`
		SELECT scheduled_time
		FROM news
		WHERE scheduled_time IS NOT NULL
		ORDER BY scheduled_time DESC
		LIMIT 1
	`).Scan(&last)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last scheduled time: %w", err)
	}

	if !last.Valid {
		return nil, nil
	}

	t := last.Time.UTC()
	return &t, nil
}

// SetScheduledTime records the slot a post was scheduled into
func (r *newsRepository) SetScheduledTime(id int64, scheduled time.Time) error {
	_, err := r.db.Exec(`
		UPDATE news SET scheduled_time = ? WHERE id = ?
	`, scheduled.UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to set scheduled time: %w", err)
	}
	return nil
}

// MarkPosted flags a record as published and stores the Facebook post ID
func (r *newsRepository) MarkPosted(id int64, fbPostID string, postedAt time.Time) error {
	_, err := r.db.Exec(`
		UPDATE news SET posted = 1, fb_post_id = ?, posted_at = ? WHERE id = ?
	`, fbPostID, postedAt.UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to mark news posted: %w", err)
	}
	return nil
}

// GetNews returns a single record by ID, or nil when it does not exist
func (r *newsRepository) GetNews(id int64) (*news.Record, error) {
	row := r.db.QueryRow(`
		SELECT `+newsColumns+`
		FROM news
		WHERE id = ?
	`, id)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get news: %w", err)
	}

	return rec, nil
}

// ListNews returns the most recently stored records
func (r *newsRepository) ListNews(limit int) ([]news.Record, error) {
	rows, err := r.db.Query(`
		SELECT `+newsColumns+`
		FROM news
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// GetStats returns counts of all, published and scheduled-but-unpublished
// records
func (r *newsRepository) GetStats() (total, posted, scheduled int, err error) {
	err = r.db.QueryRow(`
		SELECT
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN posted = 1 THEN 1 ELSE 0 END), 0) as posted,
			COALESCE(SUM(CASE WHEN posted = 0 AND scheduled_time IS NOT NULL THEN 1 ELSE 0 END), 0) as scheduled
		FROM news
	`).Scan(&total, &posted, &scheduled)

	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to get news stats: %w", err)
	}

	return total, posted, scheduled, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*news.Record, error) {
	var rec news.Record
	var scheduledTime, postedAt sql.NullTime

	err := row.Scan(
		&rec.ID, &rec.Title, &rec.Summary, &rec.URL, &rec.ImageURL,
		&rec.VideoURL, &rec.Source, &rec.Hash, &rec.Seq, &rec.Posted,
		&rec.FBPostID, &scheduledTime, &postedAt, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Timestamps are stored and compared in UTC throughout the pipeline.
	if scheduledTime.Valid {
		t := scheduledTime.Time.UTC()
		rec.ScheduledTime = &t
	}
	if postedAt.Valid {
		t := postedAt.Time.UTC()
		rec.PostedAt = &t
	}
	rec.CreatedAt = rec.CreatedAt.UTC()

	return &rec, nil
}

func scanRecords(rows *sql.Rows) ([]news.Record, error) {
	var records []news.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan news row: %w", err)
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating news rows: %w", err)
	}

	return records, nil
}
