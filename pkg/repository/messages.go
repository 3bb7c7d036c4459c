package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nourivox/nourivox-backend/pkg/domain"
)

type messagesRepository struct {
	db *sql.DB
}

func NewMessagesRepository(db *sql.DB) *messagesRepository {
	return &messagesRepository{db: db}
}

// Add durably appends one message to the user's transcript and returns it
// with the store-assigned id. Messages are never updated or deleted.
func (r *messagesRepository) Add(ctx context.Context, msg domain.Message) (domain.Message, error) {
	const query = `
		INSERT INTO chat_history (user_id, role, content, timestamp, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	imageURL := sql.NullString{String: msg.ImageURL, Valid: msg.ImageURL != ""}

	if err := r.db.QueryRowContext(ctx, query,
		msg.UserID, msg.Role, msg.Content, msg.Timestamp, imageURL,
	).Scan(&msg.ID); err != nil {
		return domain.Message{}, fmt.Errorf("inserting chat message: %w", err)
	}

	return msg, nil
}

// History returns all messages for a user in non-decreasing timestamp order.
func (r *messagesRepository) History(ctx context.Context, userID string) ([]domain.Message, error) {
	const query = `
		SELECT id, user_id, role, content, timestamp, image_url
		FROM chat_history
		WHERE user_id = $1
		ORDER BY timestamp ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching chat history: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var imageURL sql.NullString
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Role, &msg.Content, &msg.Timestamp, &imageURL); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}
		msg.ImageURL = imageURL.String
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chat history: %w", err)
	}

	return messages, nil
}
