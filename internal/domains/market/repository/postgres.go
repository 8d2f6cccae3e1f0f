package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"agromap-backend/internal/domains/market/model"
	"agromap-backend/internal/shared/utils"
	"agromap-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const marketColumns = `
	m.id, m.name, m.description, m.address, m.province, m.municipality,
	m.latitude, m.longitude, m.images, m.legal_beneficiary, m.schedule,
	m.belongs_to_sas, m.manager_id, m.created_at, m.updated_at`

const managerColumns = `u.id, u.name, u.username`

// marketFields returns the scan targets for marketColumns. The schedule is
// scanned raw and decoded by decodeSchedule.
func marketFields(m *model.Market, schedule *[]byte) []any {
	return []any{
		&m.ID, &m.Name, &m.Description, &m.Address, &m.Province, &m.Municipality,
		&m.Latitude, &m.Longitude, pq.Array(&m.Images), &m.LegalBeneficiary, schedule,
		&m.BelongsToSAS, &m.ManagerID, &m.CreatedAt, &m.UpdatedAt,
	}
}

func decodeSchedule(m *model.Market, raw []byte) {
	m.Schedule = nil
	if len(raw) == 0 {
		return
	}
	var s model.Schedule
	if err := json.Unmarshal(raw, &s); err != nil {
		// Stored schedules are validated on write; a broken one reads as absent
		return
	}
	m.Schedule = &s
}

func encodeSchedule(s *model.Schedule) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]model.MarketListItem, error) {
	var where utils.WhereBuilder
	if filter.Province != nil {
		where.Add("m.province = ?", *filter.Province)
	}
	if filter.Municipality != nil {
		where.Add("m.municipality = ?", *filter.Municipality)
	}

	query := `SELECT ` + marketColumns + `, ` + managerColumns + `
		FROM markets m
		JOIN users u ON u.id = m.manager_id` + where.SQL() + `
		ORDER BY m.created_at DESC`

	rows, err := r.pool.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list markets: %w", err)
	}
	defer rows.Close()

	items := make([]model.MarketListItem, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			item     model.MarketListItem
			schedule []byte
		)
		dest := append(marketFields(&item.Market, &schedule), &item.Manager.ID, &item.Manager.Name, &item.Manager.Username)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan market: %w", err)
		}
		decodeSchedule(&item.Market, schedule)
		item.Products = []model.ProductRef{}
		index[item.ID] = len(items)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate markets: %w", err)
	}
	if len(items) == 0 {
		return items, nil
	}

	// Step 2: attach compact products in one query
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	prows, err := r.pool.Query(ctx, `
		SELECT market_id, id, name, status
		FROM products
		WHERE market_id = ANY($1)
		ORDER BY created_at DESC`, ids)
	if err != nil {
		return nil, fmt.Errorf("list market products: %w", err)
	}
	defer prows.Close()

	for prows.Next() {
		var (
			marketID uuid.UUID
			p        model.ProductRef
		)
		if err := prows.Scan(&marketID, &p.ID, &p.Name, &p.Status); err != nil {
			return nil, fmt.Errorf("scan market product: %w", err)
		}
		if i, ok := index[marketID]; ok {
			items[i].Products = append(items[i].Products, p)
		}
	}
	return items, prows.Err()
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Market, error) {
	var (
		m        model.Market
		schedule []byte
	)
	err := r.pool.QueryRow(ctx, `SELECT `+marketColumns+` FROM markets m WHERE m.id = $1`, id).
		Scan(marketFields(&m, &schedule)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrMarketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get market: %w", err)
	}
	decodeSchedule(&m, schedule)
	return &m, nil
}

func (r *postgresRepository) GetDetail(ctx context.Context, id uuid.UUID) (*model.MarketDetail, error) {
	var (
		d        model.MarketDetail
		schedule []byte
	)
	query := `SELECT ` + marketColumns + `, ` + managerColumns + `
		FROM markets m
		JOIN users u ON u.id = m.manager_id
		WHERE m.id = $1`

	dest := append(marketFields(&d.Market, &schedule), &d.Manager.ID, &d.Manager.Name, &d.Manager.Username)
	err := r.pool.QueryRow(ctx, query, id).Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrMarketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get market detail: %w", err)
	}
	decodeSchedule(&d.Market, schedule)

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, status, images, product_type, price, price_unit, currency, quantity, unit
		FROM products
		WHERE market_id = $1
		ORDER BY created_at DESC`, id)
	if err != nil {
		return nil, fmt.Errorf("list market products: %w", err)
	}
	defer rows.Close()

	d.Products = make([]model.ProductSummary, 0)
	for rows.Next() {
		var p model.ProductSummary
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Status, pq.Array(&p.Images), &p.ProductType,
			&p.Price, &p.PriceUnit, &p.Currency, &p.Quantity, &p.Unit,
		); err != nil {
			return nil, fmt.Errorf("scan market product: %w", err)
		}
		d.Products = append(d.Products, p)
	}
	return &d, rows.Err()
}

func (r *postgresRepository) GetIDByManager(ctx context.Context, managerID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		SELECT id FROM markets WHERE manager_id = $1
		ORDER BY created_at LIMIT 1`, managerID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, model.ErrNoMarketYet
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("get manager market: %w", err)
	}
	return id, nil
}

func (r *postgresRepository) ExistsForManager(ctx context.Context, managerID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM markets WHERE manager_id = $1)`, managerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check manager market: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Create(ctx context.Context, m *model.Market) error {
	schedule, err := encodeSchedule(m.Schedule)
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}

	query := `
		INSERT INTO markets (
			name, description, address, province, municipality, latitude, longitude,
			images, legal_beneficiary, schedule, belongs_to_sas, manager_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	err = r.pool.QueryRow(ctx, query,
		m.Name, m.Description, m.Address, m.Province, m.Municipality, m.Latitude, m.Longitude,
		pq.Array(m.Images), m.LegalBeneficiary, schedule, m.BelongsToSAS, m.ManagerID,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if database.IsForeignKeyViolation(err) {
		return model.ErrManagerNotFound
	}
	if err != nil {
		return fmt.Errorf("insert market: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, m *model.Market) error {
	schedule, err := encodeSchedule(m.Schedule)
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}

	query := `
		UPDATE markets SET
			name = $2, description = $3, address = $4, province = $5, municipality = $6,
			latitude = $7, longitude = $8, images = $9, legal_beneficiary = $10,
			schedule = $11, belongs_to_sas = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err = r.pool.QueryRow(ctx, query,
		m.ID, m.Name, m.Description, m.Address, m.Province, m.Municipality,
		m.Latitude, m.Longitude, pq.Array(m.Images), m.LegalBeneficiary,
		schedule, m.BelongsToSAS,
	).Scan(&m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrMarketNotFound
	}
	if err != nil {
		return fmt.Errorf("update market: %w", err)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) ([]string, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) ([]string, error) {
		// Step 1: product images, before the cascade removes the rows
		var images []string
		err := tx.QueryRow(ctx, `
			SELECT COALESCE(array_agg(img), '{}')
			FROM products, unnest(images) AS img
			WHERE market_id = $1`, id).Scan(pq.Array(&images))
		if err != nil {
			return nil, fmt.Errorf("collect product images: %w", err)
		}

		// Step 2: the market; products and their comments and ratings cascade
		tag, err := tx.Exec(ctx, `DELETE FROM markets WHERE id = $1`, id)
		if err != nil {
			return nil, fmt.Errorf("delete market: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, model.ErrMarketNotFound
		}
		return images, nil
	})
}

func (r *postgresRepository) Provinces(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT province FROM markets`)
	if err != nil {
		return nil, fmt.Errorf("list provinces: %w", err)
	}
	defer rows.Close()

	provinces, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan provinces: %w", err)
	}
	return provinces, nil
}
