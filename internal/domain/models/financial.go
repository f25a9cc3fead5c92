package models

import (
	"fmt"
	"time"
)

// TransactionKind splits financial records into money in and money out.
type TransactionKind string

const (
	TransactionExpense TransactionKind = "expense"
	TransactionRevenue TransactionKind = "revenue"
)

// ParseTransactionKind validates a raw transaction kind tag.
func ParseTransactionKind(raw string) (TransactionKind, error) {
	switch TransactionKind(raw) {
	case TransactionExpense, TransactionRevenue:
		return TransactionKind(raw), nil
	default:
		return "", fmt.Errorf("%w: unknown transaction kind %q", ErrInvalidInput, raw)
	}
}

// FinancialCategory groups transactions for reporting.
type FinancialCategory string

const (
	CategoryFeed      FinancialCategory = "feed"
	CategoryCare      FinancialCategory = "care"
	CategoryEquipment FinancialCategory = "equipment"
	CategorySale      FinancialCategory = "sale"
	CategoryOther     FinancialCategory = "other"
)

// ParseFinancialCategory validates a raw category tag.
func ParseFinancialCategory(raw string) (FinancialCategory, error) {
	switch FinancialCategory(raw) {
	case CategoryFeed, CategoryCare, CategoryEquipment, CategorySale, CategoryOther:
		return FinancialCategory(raw), nil
	default:
		return "", fmt.Errorf("%w: unknown financial category %q", ErrInvalidInput, raw)
	}
}

// FinancialRecord captures a single expense or revenue entry. Independent of
// any animal lifecycle; consumed only by aggregation.
type FinancialRecord struct {
	ID          string            `bson:"id" json:"id"`
	Kind        TransactionKind   `bson:"kind" json:"kind"`
	Category    FinancialCategory `bson:"category" json:"category"`
	Amount      float64           `bson:"amount" json:"amount"`
	Date        time.Time         `bson:"date" json:"date"`
	AnimalID    string            `bson:"animal_id,omitempty" json:"animal_id,omitempty"`
	Description string            `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time         `bson:"created_at" json:"created_at"`
}

// FinancialCreate carries the caller-supplied fields for a new transaction.
type FinancialCreate struct {
	Kind        string    `json:"kind" binding:"required"`
	Category    string    `json:"category" binding:"required"`
	Amount      float64   `json:"amount" binding:"required"`
	Date        time.Time `json:"date"`
	AnimalID    string    `json:"animal_id"`
	Description string    `json:"description"`
}
