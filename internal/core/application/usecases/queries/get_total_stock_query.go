package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetTotalStockQueryIsNotConstructed = errors.New(
	"GetTotalStockQuery must be created via NewGetTotalStockQuery constructor",
)

// GetTotalStockQuery retrieves the combined available quantity of one
// product across every warehouse.
//
// Example:
//
//	query, _ := NewGetTotalStockQuery(productID)
//	handler := NewGetTotalStockQueryHandler(db)
//
//	stock, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get stock: %w", err)
//	}
//	fmt.Printf("%d units available\n", stock.Total)
type GetTotalStockQuery struct { //nolint:recvcheck //using for validation
	productID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTotalStockQuery creates a query for one product's total stock.
// Validates that the product ID is a valid UUID.
func NewGetTotalStockQuery(productID kernel.UUID) (GetTotalStockQuery, error) {
	stockQuery := GetTotalStockQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := stockQuery.setProductID(productID); err != nil {
		return GetTotalStockQuery{}, err
	}

	return stockQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetTotalStockQueryIsNotConstructed if validation fails.
func (q GetTotalStockQuery) Validate() error {
	return q.guard.Validate(ErrGetTotalStockQueryIsNotConstructed)
}

// ProductID returns the product whose stock is queried.
func (q GetTotalStockQuery) ProductID() kernel.UUID {
	return q.productID
}

func (q *GetTotalStockQuery) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	q.productID = productID
	return nil
}

// GetTotalStockQueryResponse represents one product's combined stock level.
type GetTotalStockQueryResponse struct {
	ProductID kernel.UUID
	Total     int
}
