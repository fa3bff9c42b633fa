package courses

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) ListByTier(ctx context.Context, tier Tier, limit int) ([]StoredCourse, error) {
	query := `
SELECT id, title, platform, tier, price, rating, duration, level, description, url, created_at
FROM courses
WHERE tier = $1
ORDER BY rating DESC NULLS LAST, title ASC`
	args := []any{string(tier)}
	if limit > 0 {
		query += `
LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredCourse
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, course)
	}
	return out, rows.Err()
}

func (r *PGRepo) Insert(ctx context.Context, course StoredCourse) error {
	const query = `
INSERT INTO courses (id, title, platform, tier, price, rating, duration, level, description, url, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())`
	var rating any
	if course.Rating != nil {
		rating = *course.Rating
	}
	_, err := r.DB.ExecContext(ctx, query,
		course.ID,
		course.Title,
		course.Platform,
		string(course.Tier),
		nullableString(course.Price),
		rating,
		nullableString(course.Duration),
		nullableString(course.Level),
		nullableString(course.Description),
		nullableString(course.URL),
	)
	return err
}

func scanCourse(rows *sql.Rows) (StoredCourse, error) {
	var course StoredCourse
	var tier string
	var price, duration, level, description, url sql.NullString
	var rating sql.NullFloat64
	err := rows.Scan(
		&course.ID,
		&course.Title,
		&course.Platform,
		&tier,
		&price,
		&rating,
		&duration,
		&level,
		&description,
		&url,
		&course.CreatedAt,
	)
	if err != nil {
		return StoredCourse{}, err
	}
	course.Tier = Tier(tier)
	course.Price = price.String
	course.Duration = duration.String
	course.Level = level.String
	course.Description = description.String
	course.URL = url.String
	if rating.Valid {
		value := rating.Float64
		course.Rating = &value
	}
	return course, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
