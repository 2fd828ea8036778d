package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item was not created through
// the NewItem constructor.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a single order line: a product, the ordered quantity and the unit
// price captured at order time. It is an immutable value object - the price
// does not drift if the catalog price changes after the order was placed.
type Item struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	quantity  int
	unitPrice kernel.Money
	guard     guard.ConstructorGuard
}

// NewItem creates an order line for quantity units of the given product at
// the given unit price.
//
// Parameters:
//   - productID: The ordered product (must be valid UUID)
//   - quantity: Ordered units (must be > 0)
//   - unitPrice: Price per unit captured at order time (must be valid Money)
func NewItem(productID kernel.UUID, quantity int, unitPrice kernel.Money) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the item was created through the constructor.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the identifier of the ordered product.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the ordered number of units.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price captured at order time.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal returns unit price times quantity.
func (i Item) Subtotal() (kernel.Money, error) {
	if err := i.Validate(); err != nil {
		return kernel.Money{}, err
	}

	return i.unitPrice.MultiplyBy(i.quantity)
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	i.productID = productID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}

	i.unitPrice = unitPrice
	return nil
}
