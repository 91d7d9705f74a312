package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
)

// catalogRepository serves one master-data table described by an Entity.
// T must embed model.Base.
type catalogRepository[T any] struct {
	BaseRepository
	entity model.Entity
}

func NewCatalogRepository[T any](db *sqlx.DB, m *metrics.Metrics, entity model.Entity) repository.CatalogRepository[T] {
	return &catalogRepository[T]{
		BaseRepository: NewBaseRepository(db, m),
		entity:         entity,
	}
}

func (r *catalogRepository[T]) List(ctx context.Context, filter model.ListFilter) ([]T, error) {
	var (
		where []string
		args  []interface{}
	)
	if r.entity.Archivable && !filter.IncludeArchived {
		where = append(where, "is_active")
	}
	if filter.Search != "" && r.entity.SearchColumn != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("%s ILIKE $%d", r.entity.SearchColumn, len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, r.entity.SelectList(), r.entity.Table)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + r.entity.Order()

	records := []T{}
	if err := sqlx.SelectContext(ctx, r.conn(ctx), &records, query, args...); err != nil {
		return nil, translate("list "+r.entity.Table, err)
	}
	return records, nil
}

func (r *catalogRepository[T]) Get(ctx context.Context, id int64) (*T, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, r.entity.SelectList(), r.entity.Table)

	var rec T
	if err := sqlx.GetContext(ctx, r.conn(ctx), &rec, query, id); err != nil {
		return nil, translate("get "+r.entity.Table, err)
	}
	return &rec, nil
}

func (r *catalogRepository[T]) Create(ctx context.Context, rec *T) (int64, error) {
	cols := r.entity.Columns
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (:%s) RETURNING id`,
		r.entity.Table, strings.Join(cols, ", "), strings.Join(cols, ", :"))

	conn := r.conn(ctx)
	bound, args, err := sqlx.Named(query, rec)
	if err != nil {
		return 0, fmt.Errorf("failed to bind %s insert: %w", r.entity.Table, err)
	}

	var id int64
	err = conn.QueryRowxContext(ctx, conn.Rebind(bound), args...).Scan(&id)
	r.metrics.ObserveDBOperation(r.entity.Table+".insert", err)
	if err != nil {
		return 0, translate("create "+r.entity.Table, err)
	}
	return id, nil
}

func (r *catalogRepository[T]) Update(ctx context.Context, id int64, rec *T) error {
	record, ok := any(rec).(model.Record)
	if !ok {
		return fmt.Errorf("%T does not embed model.Base", rec)
	}
	record.SetID(id)

	sets := make([]string, len(r.entity.Columns))
	for i, col := range r.entity.Columns {
		sets[i] = fmt.Sprintf("%s = :%s", col, col)
	}
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = :id`, r.entity.Table, strings.Join(sets, ", "))

	res, err := sqlx.NamedExecContext(ctx, r.conn(ctx), query, rec)
	r.metrics.ObserveDBOperation(r.entity.Table+".update", err)
	if err != nil {
		return translate("update "+r.entity.Table, err)
	}
	return affected("update "+r.entity.Table, res)
}

func (r *catalogRepository[T]) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.entity.Table)

	res, err := r.conn(ctx).ExecContext(ctx, query, id)
	r.metrics.ObserveDBOperation(r.entity.Table+".delete", err)
	if err != nil {
		return translate("delete "+r.entity.Table, err)
	}
	return affected("delete "+r.entity.Table, res)
}

func (r *catalogRepository[T]) SetActive(ctx context.Context, id int64, active bool) error {
	if !r.entity.Archivable {
		return fmt.Errorf("%s records cannot be archived", r.entity.Table)
	}
	query := fmt.Sprintf(`UPDATE %s SET is_active = $1 WHERE id = $2`, r.entity.Table)

	res, err := r.conn(ctx).ExecContext(ctx, query, active, id)
	r.metrics.ObserveDBOperation(r.entity.Table+".set_active", err)
	if err != nil {
		return translate("archive "+r.entity.Table, err)
	}
	return affected("archive "+r.entity.Table, res)
}
