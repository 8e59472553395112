package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// DefaultCollegeID anchors students and teachers registered before any
// college administration exists.
const DefaultCollegeID = "default"

// CreateDefaultData inserts the default college if it doesn't exist
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (College)...")

	_, err := dbPool.Exec(ctx,
		`INSERT INTO colleges (college_id, name) VALUES ($1, $2) ON CONFLICT (college_id) DO NOTHING`,
		DefaultCollegeID, "Default College")
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default college")
		return err
	}

	return nil
}
