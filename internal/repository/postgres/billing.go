package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
)

type billingRepository struct {
	BaseRepository
}

func NewBillingRepository(db *sqlx.DB, m *metrics.Metrics) repository.BillingRepository {
	return &billingRepository{BaseRepository: NewBaseRepository(db, m)}
}

const billingSelect = `
	SELECT b.id, b.admission_id, b.billing_category_id, b.description,
		b.quantity, b.unit_price, (b.quantity * b.unit_price) AS amount,
		c.name AS category_name, b.created_at
	FROM billing_items b
	JOIN billing_categories c ON c.id = b.billing_category_id`

func (r *billingRepository) ListByAdmission(ctx context.Context, admissionID int64) ([]model.BillingItem, error) {
	items := []model.BillingItem{}
	query := billingSelect + ` WHERE b.admission_id = $1 ORDER BY b.id`
	if err := sqlx.SelectContext(ctx, r.conn(ctx), &items, query, admissionID); err != nil {
		return nil, translate("list billing items", err)
	}
	return items, nil
}

func (r *billingRepository) Get(ctx context.Context, id int64) (*model.BillingItem, error) {
	var item model.BillingItem
	if err := sqlx.GetContext(ctx, r.conn(ctx), &item, billingSelect+` WHERE b.id = $1`, id); err != nil {
		return nil, translate("get billing item", err)
	}
	return &item, nil
}

func (r *billingRepository) Create(ctx context.Context, item *model.BillingItem) (int64, error) {
	query := `
		INSERT INTO billing_items (admission_id, billing_category_id, description, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.conn(ctx).QueryRowxContext(ctx, query,
		item.AdmissionID,
		item.BillingCategoryID,
		item.Description,
		item.Quantity,
		item.UnitPrice,
	).Scan(&item.ID, &item.CreatedAt)
	r.metrics.ObserveDBOperation("billing_items.insert", err)
	if err != nil {
		return 0, translate("create billing item", err)
	}
	return item.ID, nil
}

func (r *billingRepository) Update(ctx context.Context, item *model.BillingItem) error {
	query := `
		UPDATE billing_items
		SET billing_category_id = $1, description = $2, quantity = $3, unit_price = $4
		WHERE id = $5`

	res, err := r.conn(ctx).ExecContext(ctx, query,
		item.BillingCategoryID,
		item.Description,
		item.Quantity,
		item.UnitPrice,
		item.ID,
	)
	r.metrics.ObserveDBOperation("billing_items.update", err)
	if err != nil {
		return translate("update billing item", err)
	}
	return affected("update billing item", res)
}

func (r *billingRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM billing_items WHERE id = $1`, id)
	r.metrics.ObserveDBOperation("billing_items.delete", err)
	if err != nil {
		return translate("delete billing item", err)
	}
	return affected("delete billing item", res)
}
