package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"easygo/internal/pkg/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate накатывает миграции на старте через отдельное database/sql
// соединение: goose не работает поверх pgxpool.
func Migrate(ctx context.Context, cfg *config.Database) error {
	db, err := sql.Open("pgx", newDsn(cfg))
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
