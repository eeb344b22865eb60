package database

import (
	"fmt"
)

// telePostRepository handles database operations for forwarded Telegram posts
type telePostRepository struct {
	db *DB
}

func NewTelePostRepository(db *DB) TelePostRepository {
	return &telePostRepository{db: db}
}

func (r *telePostRepository) Exists(channel string, messageID int64) (bool, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM tele_posts WHERE channel = ? AND message_id = ?
	`, channel, messageID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check tele post: %w", err)
	}
	return count > 0, nil
}

func (r *telePostRepository) Insert(post *TelePost) error {
	_, err := r.db.Exec(`
		INSERT INTO tele_posts (channel, message_id, caption, fb_post_id)
		VALUES (?, ?, ?, ?)
	`, post.Channel, post.MessageID, post.Caption, post.FBPostID)
	if err != nil {
		return fmt.Errorf("failed to insert tele post: %w", err)
	}
	return nil
}

func (r *telePostRepository) List(limit int) ([]TelePost, error) {
	rows, err := r.db.Query(`
		SELECT id, channel, message_id, caption, fb_post_id, created_at
		FROM tele_posts
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tele posts: %w", err)
	}
	defer rows.Close()

	var posts []TelePost
	for rows.Next() {
		var p TelePost
		if err := rows.Scan(&p.ID, &p.Channel, &p.MessageID, &p.Caption, &p.FBPostID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tele post row: %w", err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tele post rows: %w", err)
	}

	return posts, nil
}
