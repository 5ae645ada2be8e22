package courier

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"easygo/internal/entities"
)

type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// UpsertCourier — повторная заявка перезаписывает профиль целиком.
func (r *Repository) UpsertCourier(ctx context.Context, profile entities.CourierProfile) error {
	courierDB := FromDomain(&profile)

	query := `
		INSERT INTO couriers (id, name, phone, transport, status, applied_at, approved_at, rejected_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			transport = EXCLUDED.transport,
			status = EXCLUDED.status,
			applied_at = EXCLUDED.applied_at,
			approved_at = EXCLUDED.approved_at,
			rejected_at = EXCLUDED.rejected_at
	`

	_, err := r.querier.Exec(
		ctx,
		query,
		courierDB.ID,
		courierDB.Name,
		courierDB.Phone,
		courierDB.Transport,
		courierDB.Status,
		courierDB.AppliedAt,
		courierDB.ApprovedAt,
		courierDB.RejectedAt,
	)
	if err != nil {
		return fmt.Errorf("unexpected courier repository upsert error: %w", err)
	}
	return nil
}

func (r *Repository) LoadAllCouriers(ctx context.Context) ([]entities.CourierProfile, error) {
	query := `
	SELECT id, name, phone, transport, status, applied_at, approved_at, rejected_at
	FROM couriers
	ORDER BY id`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected courier repository loadall error: %w", err)
	}
	defer rows.Close()

	courierModels := make([]CourierDB, 0, 8)
	for rows.Next() {
		var courierDB CourierDB
		err := rows.Scan(
			&courierDB.ID,
			&courierDB.Name,
			&courierDB.Phone,
			&courierDB.Transport,
			&courierDB.Status,
			&courierDB.AppliedAt,
			&courierDB.ApprovedAt,
			&courierDB.RejectedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected courier repository loadall error: %w", err)
		}
		courierModels = append(courierModels, courierDB)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected courier repository loadall error: %w", err)
	}

	return ToDomainList(courierModels), nil
}
