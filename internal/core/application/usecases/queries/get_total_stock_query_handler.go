package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetTotalStockQueryHandler sums one product's available quantity across the
// stock ledgers of every warehouse.
//
// With concurrent reservations running the sum is a point-in-time aggregate,
// not a promise that a reservation of that size would succeed.
type GetTotalStockQueryHandler struct {
	db *gorm.DB
}

// NewGetTotalStockQueryHandler creates a handler for stock level queries.
// Requires a GORM database connection for query execution.
func NewGetTotalStockQueryHandler(db *gorm.DB) GetTotalStockQueryHandler {
	return GetTotalStockQueryHandler{db: db}
}

// Handle executes the query and returns the combined stock level.
// Unknown products report zero.
func (h GetTotalStockQueryHandler) Handle(
	ctx context.Context,
	query GetTotalStockQuery,
) (GetTotalStockQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTotalStockQueryResponse{}, err
	}

	var total int
	err := h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(quantity), 0)
		FROM warehouse_stock
		WHERE product_id = ?
	`, query.ProductID().Bytes()).Scan(&total).Error
	if err != nil {
		return GetTotalStockQueryResponse{}, err
	}

	return GetTotalStockQueryResponse{
		ProductID: query.ProductID(),
		Total:     total,
	}, nil
}
