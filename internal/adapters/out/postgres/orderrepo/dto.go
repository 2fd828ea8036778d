// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/core/domain/model/warehouse"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The aggregate spans four tables: the order row itself, its line items, the
// optional payment and delivery rows, and the reservation lines the order
// holds while in progress.
type OrderDTO struct {
	ID               uuid.UUID            `gorm:"type:uuid;primaryKey"`
	ClientID         uuid.UUID            `gorm:"type:uuid;not null;index"`
	CreatedAt        time.Time            `gorm:"not null"`
	Status           int                  `gorm:"not null;index"`
	Items            []ItemDTO            `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payment          *PaymentDTO          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Delivery         *DeliveryDTO         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ReservationLines []ReservationLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line. Lines are identified by their position
// within the order, preserving the order they were added in.
type ItemDTO struct {
	OrderID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	LineNo        int       `gorm:"primaryKey"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity      int       `gorm:"type:int;not null"`
	PriceAmount   int64     `gorm:"type:bigint;not null"`
	PriceCurrency string    `gorm:"type:varchar(3);not null"`
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// PaymentDTO represents the single payment attempt attached to an order.
type PaymentDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Method        int       `gorm:"not null"`
	Amount        int64     `gorm:"type:bigint;not null"`
	Currency      string    `gorm:"type:varchar(3);not null"`
	Status        int       `gorm:"not null"`
	TransactionID string    `gorm:"type:varchar(255)"`
}

// TableName specifies the database table name for payment entities.
func (PaymentDTO) TableName() string {
	return "payments"
}

// DeliveryDTO represents the delivery attached to an order.
type DeliveryDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Street         string    `gorm:"type:varchar(255);not null"`
	City           string    `gorm:"type:varchar(255);not null"`
	Courier        string    `gorm:"type:varchar(255);not null"`
	Status         int       `gorm:"not null"`
	TrackingNumber string    `gorm:"type:varchar(255)"`
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// ReservationLineDTO records one warehouse debit of one reservation receipt.
// ReceiptNo is the receipt's position within the order, so two receipts for
// the same product stay distinct; LineNo preserves the order the warehouses
// were drained in within one receipt.
type ReservationLineDTO struct {
	OrderID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReceiptNo   int       `gorm:"primaryKey"`
	LineNo      int       `gorm:"primaryKey"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity    int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for reservation line entities.
func (ReservationLineDTO) TableName() string {
	return "reservation_lines"
}

// fromDomain converts an order domain aggregate to its database representation.
// Flattens the aggregate into the order row and its child rows.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			OrderID:       orderID,
			LineNo:        i,
			ProductID:     item.ProductID().Bytes(),
			Quantity:      item.Quantity(),
			PriceAmount:   item.UnitPrice().Amount(),
			PriceCurrency: item.UnitPrice().Currency(),
		})
	}

	var payDTO *PaymentDTO
	if pay := aggregate.Payment(); pay != nil {
		payDTO = &PaymentDTO{
			ID:            pay.ID().Bytes(),
			OrderID:       orderID,
			Method:        int(pay.Method()),
			Amount:        pay.Amount().Amount(),
			Currency:      pay.Amount().Currency(),
			Status:        int(pay.Status()),
			TransactionID: pay.TransactionID(),
		}
	}

	var delDTO *DeliveryDTO
	if del := aggregate.Delivery(); del != nil {
		delDTO = &DeliveryDTO{
			ID:             del.ID().Bytes(),
			OrderID:        orderID,
			Street:         del.Address().Street(),
			City:           del.Address().City(),
			Courier:        del.Courier(),
			Status:         int(del.Status()),
			TrackingNumber: del.TrackingNumber(),
		}
	}

	var reservationLines []ReservationLineDTO
	for receiptNo, receipt := range aggregate.Reservations() {
		for i, line := range receipt.Lines() {
			reservationLines = append(reservationLines, ReservationLineDTO{
				OrderID:     orderID,
				ReceiptNo:   receiptNo,
				LineNo:      i,
				ProductID:   receipt.ProductID().Bytes(),
				WarehouseID: line.WarehouseID().Bytes(),
				Quantity:    line.Quantity(),
			})
		}
	}

	return OrderDTO{
		ID:               orderID,
		ClientID:         aggregate.ClientID().Bytes(),
		CreatedAt:        aggregate.CreatedAt(),
		Status:           int(aggregate.Status()),
		Items:            items,
		Payment:          payDTO,
		Delivery:         delDTO,
		ReservationLines: reservationLines,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including items, payment, delivery and
// reservation receipts using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	var pay *payment.Payment
	if dto.Payment != nil {
		if pay, err = paymentToDomain(*dto.Payment); err != nil {
			return nil, err
		}
	}

	var del *delivery.Delivery
	if dto.Delivery != nil {
		if del, err = deliveryToDomain(*dto.Delivery); err != nil {
			return nil, err
		}
	}

	reservations, err := reservationsToDomain(dto.ReservationLines)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, clientID, dto.CreatedAt, items, order.Status(dto.Status), pay, del, reservations,
	)
}

func itemsToDomain(dtos []ItemDTO) ([]order.Item, error) {
	items := make([]order.Item, 0, len(dtos))
	for _, dto := range dtos {
		productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
		if err != nil {
			return nil, err
		}

		price, err := kernel.NewMoney(dto.PriceAmount, dto.PriceCurrency)
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(productID, dto.Quantity, price)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}
	return items, nil
}

func paymentToDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.Amount, dto.Currency)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(
		id, payment.Method(dto.Method), amount, payment.Status(dto.Status), dto.TransactionID,
	)
}

func deliveryToDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(dto.Street, dto.City)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id, address, dto.Courier, delivery.Status(dto.Status), dto.TrackingNumber,
	)
}

// reservationsToDomain groups reservation line rows by receipt and rebuilds
// one receipt per group, keeping the stored receipt and line order. Grouping
// by receipt rather than product keeps two receipts for the same product
// apart, which cancellation compensation depends on.
func reservationsToDomain(dtos []ReservationLineDTO) ([]warehouse.Reservation, error) {
	type group struct {
		productID kernel.UUID
		lines     []warehouse.ReservationLine
		total     int
	}

	var receiptOrder []int
	groups := make(map[int]*group)

	for _, dto := range dtos {
		g, ok := groups[dto.ReceiptNo]
		if !ok {
			productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
			if err != nil {
				return nil, err
			}

			g = &group{productID: productID}
			groups[dto.ReceiptNo] = g
			receiptOrder = append(receiptOrder, dto.ReceiptNo)
		}

		warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
		if err != nil {
			return nil, err
		}

		line, err := warehouse.NewReservationLine(warehouseID, dto.Quantity)
		if err != nil {
			return nil, err
		}

		g.lines = append(g.lines, line)
		g.total += dto.Quantity
	}

	reservations := make([]warehouse.Reservation, 0, len(groups))
	for _, key := range receiptOrder {
		g := groups[key]
		receipt, err := warehouse.NewReservation(g.productID, g.total, g.lines)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, receipt)
	}

	return reservations, nil
}
