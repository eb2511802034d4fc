package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafael/coursehub/internal/app/models"
)

// NotificationRepository handles database operations for notifications.
// Rows are written only by the fan-out transactions; they never transition
// back to unread and are never deleted by the application.
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// InsertForAnswerTx writes one unread notification per recipient for a new
// answer, inside the same transaction that created the answer.
func (r *NotificationRepository) InsertForAnswerTx(ctx context.Context, tx pgx.Tx, answerID int64, recipientIDs []int64) error {
	for _, recipientID := range recipientIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO notifications (recipient_id, answer_id)
			VALUES ($1, $2)
		`, recipientID, answerID)
		if err != nil {
			return fmt.Errorf("error inserting answer notification: %w", err)
		}
	}
	return nil
}

// InsertForQuestionTx writes one unread notification per recipient for a new
// question, inside the same transaction that created the question.
func (r *NotificationRepository) InsertForQuestionTx(ctx context.Context, tx pgx.Tx, questionID int64, recipientIDs []int64) error {
	for _, recipientID := range recipientIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO notifications (recipient_id, question_id)
			VALUES ($1, $2)
		`, recipientID, questionID)
		if err != nil {
			return fmt.Errorf("error inserting question notification: %w", err)
		}
	}
	return nil
}

// ListByRecipientTx returns the recipient's notifications newest first, with
// actor and lesson context joined in. Runs inside the list-and-mark-read
// transaction so the returned read flags are the pre-marking values.
func (r *NotificationRepository) ListByRecipientTx(ctx context.Context, tx pgx.Tx, recipientID int64) ([]*models.Notification, error) {
	query := `
		SELECT n.id, n.recipient_id, n.answer_id, n.question_id, n.read, n.created_at,
		       COALESCE(au.first_name || ' ' || au.last_name, qu.first_name || ' ' || qu.last_name, ''),
		       COALESCE(al.id, ql.id, 0),
		       COALESCE(al.title, ql.title, ''),
		       COALESCE(LEFT(a.body, 120), LEFT(q.body, 120), '')
		FROM notifications n
		LEFT JOIN answers a ON a.id = n.answer_id
		LEFT JOIN users au ON au.id = a.author_id
		LEFT JOIN questions aq ON aq.id = a.question_id
		LEFT JOIN lessons al ON al.id = aq.lesson_id
		LEFT JOIN questions q ON q.id = n.question_id
		LEFT JOIN users qu ON qu.id = q.author_id
		LEFT JOIN lessons ql ON ql.id = q.lesson_id
		WHERE n.recipient_id = $1
		ORDER BY n.created_at DESC
	`

	rows, err := tx.Query(ctx, query, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var notification models.Notification
		if err := rows.Scan(
			&notification.ID,
			&notification.RecipientID,
			&notification.AnswerID,
			&notification.QuestionID,
			&notification.Read,
			&notification.CreatedAt,
			&notification.ActorName,
			&notification.LessonID,
			&notification.LessonTitle,
			&notification.BodyPreview,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, &notification)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

// MarkAllReadTx flips every unread notification of the recipient to read and
// returns how many were flipped
func (r *NotificationRepository) MarkAllReadTx(ctx context.Context, tx pgx.Tx, recipientID int64) (int64, error) {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE notifications SET read = TRUE
		WHERE recipient_id = $1 AND read = FALSE
	`, recipientID)
	if err != nil {
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// UnreadCount returns the recipient's unread notification count
func (r *NotificationRepository) UnreadCount(ctx context.Context, recipientID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications
		WHERE recipient_id = $1 AND read = FALSE
	`, recipientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}

	return count, nil
}
