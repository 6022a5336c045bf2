package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"erp_invoicing/internal/domain/entities"
	"erp_invoicing/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	pool *pgxpool.Pool
}

var _ interfaces.ICustomerDirectory = (*CustomerRepository)(nil)

func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

func (r *CustomerRepository) Get(ctx context.Context, id string) (entities.Customer, error) {
	var c entities.Customer
	err := r.pool.QueryRow(ctx, `SELECT id, name, email, address FROM customers WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Address)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Customer{}, nil
	}
	return c, err
}

func (r *CustomerRepository) Save(ctx context.Context, c entities.Customer) (entities.Customer, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO customers (id, name, email, address) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email, address = EXCLUDED.address`,
		c.ID, c.Name, c.Email, c.Address)
	if err != nil {
		return entities.Customer{}, err
	}
	return c, nil
}

// OrderRepository keeps order line items as a JSONB array.
type OrderRepository struct {
	pool *pgxpool.Pool
}

var _ interfaces.IOrderCatalog = (*OrderRepository)(nil)

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) Get(ctx context.Context, id string) (entities.Order, error) {
	var (
		o     entities.Order
		items []byte
	)
	err := r.pool.QueryRow(ctx, `SELECT id, customer_id, title, items FROM orders WHERE id = $1`, id).
		Scan(&o.ID, &o.CustomerID, &o.Title, &items)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Order{}, nil
	}
	if err != nil {
		return entities.Order{}, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderRepository) Save(ctx context.Context, o entities.Order) (entities.Order, error) {
	items, err := json.Marshal(nonNilItems(o.Items))
	if err != nil {
		return entities.Order{}, err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO orders (id, customer_id, title, items) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET customer_id = EXCLUDED.customer_id, title = EXCLUDED.title, items = EXCLUDED.items`,
		o.ID, o.CustomerID, o.Title, string(items))
	if err != nil {
		return entities.Order{}, err
	}
	return o, nil
}
