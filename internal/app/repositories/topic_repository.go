package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafael/coursehub/internal/app/models"
	"github.com/rafael/coursehub/internal/pkg/apperrors"
	"github.com/rafael/coursehub/internal/pkg/helpers"
)

// TopicRepository handles database operations for forum topics and comments
type TopicRepository struct {
	db *pgxpool.Pool
}

// NewTopicRepository creates a new TopicRepository
func NewTopicRepository(db *pgxpool.Pool) *TopicRepository {
	return &TopicRepository{db: db}
}

// Create creates a new discussion topic
func (r *TopicRepository) Create(ctx context.Context, topic *models.DiscussionTopic) error {
	query := `
		INSERT INTO discussion_topics (organization_id, author_id, title, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		topic.OrganizationID, topic.AuthorID, topic.Title, topic.Body,
	).Scan(&topic.ID, &topic.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating topic: %w", err)
	}

	return nil
}

// GetByID retrieves a topic scoped to one organization, with its comments
// oldest first
func (r *TopicRepository) GetByID(ctx context.Context, organizationID, id int64) (*models.DiscussionTopic, error) {
	query := `
		SELECT t.id, t.organization_id, t.author_id, t.title, t.body, t.created_at,
		       u.first_name || ' ' || u.last_name
		FROM discussion_topics t
		JOIN users u ON u.id = t.author_id
		WHERE t.id = $1 AND t.organization_id = $2
	`

	var topic models.DiscussionTopic
	err := r.db.QueryRow(ctx, query, id, organizationID).Scan(
		&topic.ID,
		&topic.OrganizationID,
		&topic.AuthorID,
		&topic.Title,
		&topic.Body,
		&topic.CreatedAt,
		&topic.AuthorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTopicNotFound
		}
		return nil, fmt.Errorf("error retrieving topic: %w", err)
	}

	comments, err := r.listComments(ctx, topic.ID)
	if err != nil {
		return nil, err
	}
	topic.Comments = comments
	topic.CommentCount = len(comments)

	return &topic, nil
}

func (r *TopicRepository) listComments(ctx context.Context, topicID int64) ([]*models.TopicComment, error) {
	query := `
		SELECT c.id, c.topic_id, c.author_id, c.body, c.attachment_url, c.created_at,
		       u.first_name || ' ' || u.last_name
		FROM topic_comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.topic_id = $1
		ORDER BY c.created_at
	`

	rows, err := r.db.Query(ctx, query, topicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.TopicComment
	for rows.Next() {
		var comment models.TopicComment
		if err := rows.Scan(
			&comment.ID,
			&comment.TopicID,
			&comment.AuthorID,
			&comment.Body,
			&comment.AttachmentURL,
			&comment.CreatedAt,
			&comment.AuthorName,
		); err != nil {
			return nil, err
		}
		comments = append(comments, &comment)
	}

	return comments, rows.Err()
}

// ListByOrganization lists a page of topics newest first, with comment counts
func (r *TopicRepository) ListByOrganization(ctx context.Context, organizationID int64, offset, limit int) ([]*models.DiscussionTopic, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM discussion_topics WHERE organization_id = $1`, organizationID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting topics: %w", err)
	}

	query := `
		SELECT t.id, t.organization_id, t.author_id, t.title, t.body, t.created_at,
		       u.first_name || ' ' || u.last_name,
		       (SELECT COUNT(*) FROM topic_comments c WHERE c.topic_id = t.id)
		FROM discussion_topics t
		JOIN users u ON u.id = t.author_id
		WHERE t.organization_id = $1
		ORDER BY t.created_at DESC
		OFFSET $2 LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, organizationID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var topics []*models.DiscussionTopic
	for rows.Next() {
		var topic models.DiscussionTopic
		if err := rows.Scan(
			&topic.ID,
			&topic.OrganizationID,
			&topic.AuthorID,
			&topic.Title,
			&topic.Body,
			&topic.CreatedAt,
			&topic.AuthorName,
			&topic.CommentCount,
		); err != nil {
			return nil, 0, err
		}
		topics = append(topics, &topic)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return topics, total, nil
}

// Delete deletes a topic and, by cascade, its comments
func (r *TopicRepository) Delete(ctx context.Context, organizationID, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM discussion_topics WHERE id = $1 AND organization_id = $2`, id, organizationID)
	if err != nil {
		return fmt.Errorf("error deleting topic: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTopicNotFound
	}

	return nil
}

// CreateComment adds a comment to a topic
func (r *TopicRepository) CreateComment(ctx context.Context, comment *models.TopicComment) error {
	query := `
		INSERT INTO topic_comments (topic_id, author_id, body, attachment_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		comment.TopicID, comment.AuthorID, comment.Body, helpers.GetNullString(comment.AttachmentURL),
	).Scan(&comment.ID, &comment.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating comment: %w", err)
	}

	return nil
}

// GetCommentByID retrieves a comment scoped to one organization
func (r *TopicRepository) GetCommentByID(ctx context.Context, organizationID, id int64) (*models.TopicComment, error) {
	query := `
		SELECT c.id, c.topic_id, c.author_id, c.body, c.attachment_url, c.created_at
		FROM topic_comments c
		JOIN discussion_topics t ON t.id = c.topic_id
		WHERE c.id = $1 AND t.organization_id = $2
	`

	var comment models.TopicComment
	err := r.db.QueryRow(ctx, query, id, organizationID).Scan(
		&comment.ID,
		&comment.TopicID,
		&comment.AuthorID,
		&comment.Body,
		&comment.AttachmentURL,
		&comment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("error retrieving comment: %w", err)
	}

	return &comment, nil
}

// DeleteComment deletes a comment
func (r *TopicRepository) DeleteComment(ctx context.Context, organizationID, id int64) error {
	query := `
		DELETE FROM topic_comments c
		USING discussion_topics t
		WHERE c.topic_id = t.id AND c.id = $1 AND t.organization_id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, id, organizationID)
	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}

	return nil
}
