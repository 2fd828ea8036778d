// Package warehouserepo provides data transfer objects and mapping functions for warehouse
// persistence. This package implements the repository pattern for the warehouse domain
// aggregate, handling the conversion between domain entities and database representations.
package warehouserepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/warehouse"

	"github.com/google/uuid"
)

// WarehouseDTO represents the database structure for persisting warehouse
// aggregates. The stock ledger is stored as one row per product.
type WarehouseDTO struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name     string     `gorm:"type:varchar(255);not null"`
	Priority int        `gorm:"type:int;not null;index"`
	Stock    []StockDTO `gorm:"foreignKey:WarehouseID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for warehouse entities.
// Overrides GORM's default naming convention to use "warehouses".
func (WarehouseDTO) TableName() string {
	return "warehouses"
}

// StockDTO represents one ledger entry: the available quantity of one product
// in one warehouse.
type StockDTO struct {
	WarehouseID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity    int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for stock ledger entries.
func (StockDTO) TableName() string {
	return "warehouse_stock"
}

// fromDomain converts a warehouse domain aggregate to its database representation.
// Flattens the stock ledger into one row per product.
func fromDomain(aggregate *warehouse.Warehouse) WarehouseDTO {
	warehouseID := aggregate.ID().Bytes()
	ledger := aggregate.Stock()

	stock := make([]StockDTO, 0, len(ledger))
	for productID, quantity := range ledger {
		stock = append(stock, StockDTO{
			WarehouseID: warehouseID,
			ProductID:   productID.Bytes(),
			Quantity:    quantity,
		})
	}

	return WarehouseDTO{
		ID:       warehouseID,
		Name:     aggregate.Name(),
		Priority: aggregate.Priority(),
		Stock:    stock,
	}
}

// toDomain converts a database DTO to a warehouse domain aggregate.
// Reconstructs the complete aggregate including its ledger using RestoreWarehouse.
func toDomain(dto WarehouseDTO) (*warehouse.Warehouse, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	stock := make(map[kernel.UUID]int, len(dto.Stock))
	for _, entry := range dto.Stock {
		productID, productErr := kernel.UUIDFromBytes(entry.ProductID[:])
		if productErr != nil {
			return nil, productErr
		}
		stock[productID] = entry.Quantity
	}

	return warehouse.RestoreWarehouse(id, dto.Name, dto.Priority, stock)
}
