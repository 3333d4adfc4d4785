package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/youthscout/talent-tracker/internal/domain/country"
	qb "github.com/youthscout/talent-tracker/internal/platform/querybuilder"
)

type CountryRepository struct {
	db *sqlx.DB
}

func NewCountryRepository(db *sqlx.DB) *CountryRepository {
	return &CountryRepository{db: db}
}

func (r *CountryRepository) FindByNameIgnoreCase(ctx context.Context, name string) (country.Country, bool, error) {
	query, args, err := qb.Select("*").From("countries").
		Where(
			qb.Expr("LOWER(name) = LOWER(?)", name),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return country.Country{}, false, fmt.Errorf("build find country by name query: %w", err)
	}

	var row countryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return country.Country{}, false, nil
		}
		return country.Country{}, false, fmt.Errorf("find country by name: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *CountryRepository) Save(ctx context.Context, record country.Country) (country.Country, error) {
	model := countryInsertModel{
		Name:    record.Name,
		Code:    nullableString(record.Code),
		FlagURL: nullableString(record.FlagURL),
	}
	query, args, err := qb.InsertModel("countries", model, `ON CONFLICT (name) WHERE deleted_at IS NULL
DO UPDATE SET
    code = COALESCE(EXCLUDED.code, countries.code),
    flag_url = COALESCE(EXCLUDED.flag_url, countries.flag_url)
RETURNING id`)
	if err != nil {
		return country.Country{}, fmt.Errorf("build save country query: %w", err)
	}

	if err := r.db.GetContext(ctx, &record.ID, query, args...); err != nil {
		return country.Country{}, fmt.Errorf("save country: %w", err)
	}
	return record, nil
}
