package assumptions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/pension/internal/database"
)

const profileColumns = `id, name, description, risk_profile,
	withdrawal_rate, growth_rate_pre_retirement, growth_rate_post_retirement,
	inflation_rate, tax_rate, is_default, is_active, created_at, updated_at`

// Repository handles assumption profile storage in the financial_assumptions
// table of pension.db.
//
// Profiles are keyed by name. Exactly one active profile is expected to carry
// the default flag; Upsert clears the flag on the others when it sets it.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new assumptions repository.
//
// Parameters:
//   - db: Database connection to pension.db
//   - log: Structured logger
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "assumptions").Logger(),
	}
}

// SeedDefaults inserts the built-in profiles that are not stored yet.
// Existing rows are left untouched so operator edits survive restarts.
//
// Returns:
//   - int: Number of profiles inserted
//   - error: Error if the transaction fails
func (r *Repository) SeedDefaults(ctx context.Context) (int, error) {
	inserted := 0
	now := time.Now().Unix()

	err := database.WithTransaction(r.db, func(tx *sql.Tx) error {
		for _, p := range BuiltinProfiles() {
			res, err := tx.ExecContext(ctx, `
				INSERT OR IGNORE INTO financial_assumptions (`+profileColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, uuid.NewString(), p.Name, p.Description, string(p.RiskProfile),
				p.WithdrawalRate, p.GrowthRatePreRetirement, p.GrowthRatePostRetirement,
				p.InflationRate, p.TaxRate, p.IsDefault, p.IsActive, now, now)
			if err != nil {
				return fmt.Errorf("failed to seed profile %s: %w", p.Name, err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				inserted++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if inserted > 0 {
		r.log.Info().Int("inserted", inserted).Msg("Seeded built-in assumption profiles")
	}
	return inserted, nil
}

// List returns stored profiles, default first and then by name.
//
// Parameters:
//   - activeOnly: When true, inactive profiles are skipped
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM financial_assumptions`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY is_default DESC, name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query assumption profiles: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assumption profiles: %w", err)
	}

	return profiles, nil
}

// GetByName returns the active profile with the given name.
// Names are matched case-insensitively.
//
// Returns:
//   - Profile: The stored profile
//   - error: ErrProfileNotFound if no active profile matches
func (r *Repository) GetByName(ctx context.Context, name string) (Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+` FROM financial_assumptions
		WHERE name = ? COLLATE NOCASE AND is_active = 1
	`, name)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

// GetDefault returns the active profile flagged as default.
func (r *Repository) GetDefault(ctx context.Context) (Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+` FROM financial_assumptions
		WHERE is_default = 1 AND is_active = 1
		ORDER BY updated_at DESC LIMIT 1
	`)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, fmt.Errorf("%w: no default profile", ErrProfileNotFound)
	}
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Upsert inserts or updates a profile by name, keeping its id and creation time.
// Setting IsDefault clears the flag on every other profile.
//
// Returns:
//   - Profile: The stored profile as read back from the database
func (r *Repository) Upsert(ctx context.Context, p Profile) (Profile, error) {
	if p.Name == "" {
		return Profile{}, fmt.Errorf("profile name is required")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.RiskProfile == "" {
		p.RiskProfile = RiskModerate
	}
	now := time.Now().Unix()

	err := database.WithTransaction(r.db, func(tx *sql.Tx) error {
		if p.IsDefault {
			if _, err := tx.ExecContext(ctx,
				`UPDATE financial_assumptions SET is_default = 0 WHERE name != ?`, p.Name); err != nil {
				return fmt.Errorf("failed to clear default flag: %w", err)
			}
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO financial_assumptions (`+profileColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				description = excluded.description,
				risk_profile = excluded.risk_profile,
				withdrawal_rate = excluded.withdrawal_rate,
				growth_rate_pre_retirement = excluded.growth_rate_pre_retirement,
				growth_rate_post_retirement = excluded.growth_rate_post_retirement,
				inflation_rate = excluded.inflation_rate,
				tax_rate = excluded.tax_rate,
				is_default = excluded.is_default,
				is_active = excluded.is_active,
				updated_at = excluded.updated_at
		`, p.ID, p.Name, p.Description, string(p.RiskProfile),
			p.WithdrawalRate, p.GrowthRatePreRetirement, p.GrowthRatePostRetirement,
			p.InflationRate, p.TaxRate, p.IsDefault, p.IsActive, now, now)
		if err != nil {
			return fmt.Errorf("failed to upsert profile %s: %w", p.Name, err)
		}
		return nil
	})
	if err != nil {
		return Profile{}, err
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM financial_assumptions WHERE name = ?`, p.Name)
	return scanProfile(row)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (Profile, error) {
	var (
		p           Profile
		risk        string
		description sql.NullString
	)
	err := row.Scan(&p.ID, &p.Name, &description, &risk,
		&p.WithdrawalRate, &p.GrowthRatePreRetirement, &p.GrowthRatePostRetirement,
		&p.InflationRate, &p.TaxRate, &p.IsDefault, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, err
	}
	if err != nil {
		return Profile{}, fmt.Errorf("failed to scan assumption profile: %w", err)
	}
	p.Description = description.String
	p.RiskProfile = RiskProfile(risk)
	return p, nil
}
