package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"CourseHub/internal/models"
)

type FavoritePostgres struct {
	db *pgxpool.Pool
}

func NewFavoritePostgres(db *pgxpool.Pool) *FavoritePostgres {
	return &FavoritePostgres{db: db}
}

const favoriteSelect = `
	SELECT f.id, f.course_id, f.origin, f.added_at,
	       c.title, c.instructor, c.description, c.price, c.category, c.image_url
	  FROM favorites f
	  JOIN courses c ON c.id = f.course_id
`

func scanFavorite(row pgx.Row) (*models.Favorite, error) {
	var f models.Favorite
	err := row.Scan(
		&f.ID,
		&f.CourseID,
		&f.Origin,
		&f.AddedAt,
		&f.Course.Title,
		&f.Course.Instructor,
		&f.Course.Description,
		&f.Course.Price,
		&f.Course.Category,
		&f.Course.ImageURL,
	)
	if err != nil {
		return nil, err
	}
	f.Course.ID = f.CourseID
	return &f, nil
}

func (r *FavoritePostgres) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	query := favoriteSelect + ` WHERE f.user_id = $1 ORDER BY f.added_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := make([]models.Favorite, 0)
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		favorites = append(favorites, *f)
	}
	return favorites, rows.Err()
}

// Toggle flips (user, course, origin) membership inside one transaction so
// concurrent flips of the same key serialize instead of double-inserting.
func (r *FavoritePostgres) Toggle(ctx context.Context, userID, courseID uuid.UUID, origin models.Origin) (bool, *models.Favorite, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, nil, err
	}
	defer tx.Rollback(ctx)

	var existingID uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT id FROM favorites WHERE user_id = $1 AND course_id = $2 AND origin = $3 FOR UPDATE`,
		userID, courseID, origin,
	).Scan(&existingID)
	switch {
	case err == nil:
		if _, err := tx.Exec(ctx, `DELETE FROM favorites WHERE id = $1`, existingID); err != nil {
			return false, nil, err
		}
		if err := tx.Commit(ctx); err != nil {
			return false, nil, err
		}
		return true, nil, nil
	case errors.Is(err, pgx.ErrNoRows):
		fav := models.Favorite{
			ID:       uuid.New(),
			CourseID: courseID,
			Origin:   origin,
			AddedAt:  time.Now().UTC(),
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO favorites (id, user_id, course_id, origin, added_at) VALUES ($1, $2, $3, $4, $5)`,
			fav.ID, userID, fav.CourseID, fav.Origin, fav.AddedAt,
		)
		if err != nil {
			return false, nil, err
		}
		err = tx.QueryRow(ctx,
			`SELECT title, instructor, description, price, category, image_url FROM courses WHERE id = $1`,
			courseID,
		).Scan(&fav.Course.Title, &fav.Course.Instructor, &fav.Course.Description,
			&fav.Course.Price, &fav.Course.Category, &fav.Course.ImageURL)
		if err != nil {
			return false, nil, err
		}
		fav.Course.ID = courseID
		if err := tx.Commit(ctx); err != nil {
			return false, nil, err
		}
		return false, &fav, nil
	default:
		return false, nil, err
	}
}
