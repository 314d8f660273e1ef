package orphan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	"github.com/m04kA/SMC-MeetingBooking/pkg/psqlbuilder"
)

const tableName = "orphan_resources"

// DDL для каждого поддерживаемого драйвера
var schema = map[string]string{
	psqlbuilder.DriverPostgres: `
CREATE TABLE IF NOT EXISTS orphan_resources (
    id            BIGSERIAL PRIMARY KEY,
    intent_id     VARCHAR(64) NOT NULL,
    organizer_id  BIGINT      NOT NULL,
    resource_type VARCHAR(32) NOT NULL,
    resource_id   BIGINT      NOT NULL,
    reason        VARCHAR(64) NOT NULL,
    details       TEXT,
    created_at    TIMESTAMP   NOT NULL DEFAULT NOW(),
    UNIQUE (resource_type, resource_id)
)`,
	psqlbuilder.DriverSQLite: `
CREATE TABLE IF NOT EXISTS orphan_resources (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    intent_id     TEXT      NOT NULL,
    organizer_id  INTEGER   NOT NULL,
    resource_type TEXT      NOT NULL,
    resource_id   INTEGER   NOT NULL,
    reason        TEXT      NOT NULL,
    details       TEXT,
    created_at    TIMESTAMP NOT NULL,
    UNIQUE (resource_type, resource_id)
)`,
}

// ListFilter фильтр журнала
type ListFilter struct {
	OrganizerID *int64 // nil - все организаторы
	Limit       uint64 // 0 - без ограничения
}

// Repository журнал "осиротевших" ресурсов бэкенда
// Бронирование не откатывает созданные шаги, поэтому оставшиеся записи фиксируются здесь
type Repository struct {
	db     DBExecutor
	driver string
	sb     squirrel.StatementBuilderType
	now    func() time.Time
}

// NewRepository создает репозиторий для указанного драйвера (postgres или sqlite)
func NewRepository(db DBExecutor, driver string) *Repository {
	return &Repository{
		db:     db,
		driver: driver,
		sb:     psqlbuilder.For(driver),
		now:    time.Now,
	}
}

// Migrate создает таблицу журнала, если ее нет
func (r *Repository) Migrate(ctx context.Context) error {
	ddl, ok := schema[r.driver]
	if !ok {
		return fmt.Errorf("%w: Migrate - unsupported driver %q", ErrBuildQuery, r.driver)
	}
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("%w: Migrate - create table: %v", ErrExecQuery, err)
	}
	return nil
}

// Record добавляет ресурс в журнал
// Если ресурс уже записан (например, встреча осталась после ошибки и затем бронирование отменили), возвращает ErrAlreadyRecorded
func (r *Repository) Record(ctx context.Context, orphan *domain.OrphanResource) (*domain.OrphanResource, error) {
	createdAt := r.now().UTC().Truncate(time.Second)

	query, args, err := r.sb.Insert(tableName).
		Columns(
			"intent_id",
			"organizer_id",
			"resource_type",
			"resource_id",
			"reason",
			"details",
			"created_at",
		).
		Values(
			orphan.IntentID,
			orphan.OrganizerID,
			string(orphan.ResourceType),
			orphan.ResourceID,
			string(orphan.Reason),
			orphan.Details,
			createdAt,
		).
		Suffix("ON CONFLICT (resource_type, resource_id) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Record - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAlreadyRecorded
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Record - execute insert: %v", ErrExecQuery, err)
	}

	recorded := *orphan
	recorded.ID = id
	recorded.CreatedAt = createdAt
	return &recorded, nil
}

// List возвращает записи журнала, новые первыми
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]*domain.OrphanResource, error) {
	selectBuilder := r.sb.Select(
		"id",
		"intent_id",
		"organizer_id",
		"resource_type",
		"resource_id",
		"reason",
		"details",
		"created_at",
	).
		From(tableName).
		OrderBy("created_at DESC", "id DESC")

	if filter.OrganizerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"organizer_id": *filter.OrganizerID})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.OrphanResource, 0)
	for rows.Next() {
		var (
			o            domain.OrphanResource
			resourceType string
			reason       string
			details      sql.NullString
		)
		if err := rows.Scan(
			&o.ID,
			&o.IntentID,
			&o.OrganizerID,
			&resourceType,
			&o.ResourceID,
			&reason,
			&details,
			&o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		o.ResourceType = domain.OrphanResourceType(resourceType)
		o.Reason = domain.OrphanReason(reason)
		if details.Valid {
			o.Details = &details.String
		}
		result = append(result, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Resolve удаляет записи бронирования, оставленные ошибками шагов
// Вызывается, когда бронирование все же завершилось: его ресурсы больше не "осиротевшие"
// Записи об отмене и поздних ответах не трогаются
func (r *Repository) Resolve(ctx context.Context, intentID string) (int64, error) {
	query, args, err := r.sb.Delete(tableName).
		Where(squirrel.Eq{
			"intent_id": intentID,
			"reason": []string{
				string(domain.OrphanReasonRoomCreationFailed),
				string(domain.OrphanReasonAssignmentFailed),
			},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Resolve - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: Resolve - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: Resolve - rows affected: %v", ErrExecQuery, err)
	}
	return deleted, nil
}
