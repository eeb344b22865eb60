package database

import (
	"fmt"
)

// videoUploadRepository handles database operations for YouTube uploads
type videoUploadRepository struct {
	db *DB
}

func NewVideoUploadRepository(db *DB) VideoUploadRepository {
	return &videoUploadRepository{db: db}
}

func (r *videoUploadRepository) Insert(upload *VideoUpload) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO video_uploads (file_name, title, status)
		VALUES (?, ?, 'pending')
	`, upload.FileName, upload.Title)
	if err != nil {
		return 0, fmt.Errorf("failed to insert video upload: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted upload ID: %w", err)
	}

	return id, nil
}

func (r *videoUploadRepository) SetResult(id int64, youtubeID, status, errMsg string) error {
	_, err := r.db.Exec(`
		UPDATE video_uploads SET youtube_id = ?, status = ?, error = ? WHERE id = ?
	`, youtubeID, status, errMsg, id)
	if err != nil {
		return fmt.Errorf("failed to update video upload: %w", err)
	}
	return nil
}

func (r *videoUploadRepository) List(limit int) ([]VideoUpload, error) {
	rows, err := r.db.Query(`
		SELECT id, file_name, title, youtube_id, status, error, created_at
		FROM video_uploads
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list video uploads: %w", err)
	}
	defer rows.Close()

	var uploads []VideoUpload
	for rows.Next() {
		var u VideoUpload
		if err := rows.Scan(&u.ID, &u.FileName, &u.Title, &u.YouTubeID, &u.Status, &u.Error, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan video upload row: %w", err)
		}
		u.CreatedAt = u.CreatedAt.UTC()
		uploads = append(uploads, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating video upload rows: %w", err)
	}

	return uploads, nil
}
