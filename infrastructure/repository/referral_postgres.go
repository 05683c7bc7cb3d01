package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/referral-landing-api/infrastructure/database/postgres"
	"github.com/vfg2006/referral-landing-api/internal/domain"
)

const (
	referralsTable     = "referrals"
	referralPagesTable = "referral_pages"

	uniqueViolation = "23505"
)

var referralColumns = []string{
	"id", "name", "email", "phone", "referrer",
	"daily", "weekly", "monthly", "yearly",
	"page_url", "created_at",
}

type referralPostgresRepository struct {
	conn postgres.Queryer
}

func NewReferralPostgresRepository(conn postgres.Queryer) ReferralRepository {
	return &referralPostgresRepository{
		conn: conn,
	}
}

func (r *referralPostgresRepository) Put(ctx context.Context, id string, referral *domain.Referral) error {
	if err := ValidateReferralID(id); err != nil {
		return err
	}

	query, args, err := squirrel.
		Insert(referralsTable).
		Columns(referralColumns...).
		Values(
			id,
			referral.Name,
			referral.Email,
			referral.Phone,
			referral.Referrer,
			referral.Earnings.Daily,
			referral.Earnings.Weekly,
			referral.Earnings.Monthly,
			referral.Earnings.Yearly,
			referral.PageURL,
			referral.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrReferralAlreadyExists
		}
		return errors.Wrap(err, "erro ao inserir indicação")
	}

	return nil
}

func (r *referralPostgresRepository) Get(ctx context.Context, id string) (*domain.Referral, error) {
	if err := ValidateReferralID(id); err != nil {
		return nil, err
	}

	query, args, err := squirrel.
		Select(referralColumns...).
		From(referralsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	referral, err := scanReferral(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReferralNotFound
		}
		return nil, errors.Wrap(err, "erro ao buscar indicação")
	}

	return referral, nil
}

func (r *referralPostgresRepository) List(ctx context.Context, filters domain.ReferralFilters) ([]*domain.Referral, error) {
	queryBuilder := squirrel.
		Select(referralColumns...).
		From(referralsTable).
		OrderBy("created_at DESC", "id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filters.Since != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"created_at": *filters.Since})
	}

	if filters.Referrer != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"referrer": filters.Referrer})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	referrals := make([]*domain.Referral, 0)
	for rows.Next() {
		referral, err := scanReferral(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear indicação")
		}
		referrals = append(referrals, referral)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return referrals, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReferral(row rowScanner) (*domain.Referral, error) {
	referral := &domain.Referral{}
	err := row.Scan(
		&referral.ID,
		&referral.Name,
		&referral.Email,
		&referral.Phone,
		&referral.Referrer,
		&referral.Earnings.Daily,
		&referral.Earnings.Weekly,
		&referral.Earnings.Monthly,
		&referral.Earnings.Yearly,
		&referral.PageURL,
		&referral.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return referral, nil
}

type pagePostgresRepository struct {
	conn postgres.Queryer
}

func NewPagePostgresRepository(conn postgres.Queryer) PageRepository {
	return &pagePostgresRepository{
		conn: conn,
	}
}

func (r *pagePostgresRepository) PutPage(ctx context.Context, id string, html []byte) error {
	if err := ValidateReferralID(id); err != nil {
		return err
	}

	query, args, err := squirrel.
		Insert(referralPagesTable).
		Columns("referral_id", "html").
		Values(id, string(html)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrReferralAlreadyExists
		}
		return errors.Wrap(err, "erro ao inserir página")
	}

	return nil
}

func (r *pagePostgresRepository) GetPage(ctx context.Context, id string) ([]byte, error) {
	if err := ValidateReferralID(id); err != nil {
		return nil, err
	}

	query, args, err := squirrel.
		Select("html").
		From(referralPagesTable).
		Where(squirrel.Eq{"referral_id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	var html string
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&html); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReferralNotFound
		}
		return nil, errors.Wrap(err, "erro ao buscar página")
	}

	return []byte(html), nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
