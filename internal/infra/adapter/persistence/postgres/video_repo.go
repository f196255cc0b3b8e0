package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"solidarity-api/internal/domain/entity"
	"solidarity-api/internal/repository"
)

// defaultVideoLimit caps unbounded listings.
const defaultVideoLimit = 50

type VideoRepo struct{ db Querier }

func NewVideoRepo(db Querier) repository.VideoRepository {
	return &VideoRepo{db: db}
}

const videoColumns = `id, title, title_en, description, url, category, featured, published_at, created_at, updated_at`

func (repo *VideoRepo) Get(ctx context.Context, id int64) (*entity.Video, error) {
	query := `
SELECT ` + videoColumns + `
FROM videos
WHERE id = $1`
	video, err := scanVideo(repo.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("Get: %w", entity.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return video, nil
}

func (repo *VideoRepo) List(ctx context.Context, f repository.VideoFilter) ([]*entity.Video, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + videoColumns + ` FROM videos`)

	var conditions []string
	var args []interface{}
	if f.Category != nil {
		args = append(args, string(*f.Category))
		conditions = append(conditions, "category = $"+strconv.Itoa(len(args)))
	}
	if f.Featured != nil {
		args = append(args, *f.Featured)
		conditions = append(conditions, "featured = $"+strconv.Itoa(len(args)))
	}
	if len(conditions) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	sb.WriteString(" ORDER BY published_at DESC NULLS LAST, id DESC")

	limit := f.Limit
	if limit <= 0 {
		limit = defaultVideoLimit
	}
	args = append(args, limit)
	sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	if f.Offset > 0 {
		args = append(args, f.Offset)
		sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))
	}

	rows, err := repo.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	videos := make([]*entity.Video, 0)
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return videos, nil
}

func (repo *VideoRepo) Insert(ctx context.Context, v *entity.Video) (int64, error) {
	const query = `
INSERT INTO videos (title, title_en, description, url, category, featured, published_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		v.Title, v.TitleEN, v.Description, v.URL, string(v.Category),
		v.Featured, v.PublishedAt,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("Insert: %w", err)
	}
	return v.ID, nil
}

func (repo *VideoRepo) Update(ctx context.Context, v *entity.Video) error {
	const query = `
UPDATE videos
SET title = $2, title_en = $3, description = $4, url = $5,
    category = $6, featured = $7, published_at = $8, updated_at = now()
WHERE id = $1`
	result, err := repo.db.ExecContext(ctx, query,
		v.ID, v.Title, v.TitleEN, v.Description, v.URL,
		string(v.Category), v.Featured, v.PublishedAt,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *VideoRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM videos WHERE id = $1`
	result, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVideo(row rowScanner) (*entity.Video, error) {
	var video entity.Video
	var category string
	var publishedAt sql.NullTime
	err := row.Scan(
		&video.ID, &video.Title, &video.TitleEN, &video.Description,
		&video.URL, &category, &video.Featured, &publishedAt,
		&video.CreatedAt, &video.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	video.Category = entity.VideoCategory(category)
	if publishedAt.Valid {
		t := publishedAt.Time
		video.PublishedAt = &t
	}
	return &video, nil
}
