package models

import "time"

// SaleRecord captures the sale of an animal. Creating one is the trigger that
// moves the referenced animal to the sold status.
type SaleRecord struct {
	ID            string    `bson:"id" json:"id"`
	AnimalID      string    `bson:"animal_id" json:"animal_id"`
	Price         float64   `bson:"price" json:"price"`
	Quantity      int       `bson:"quantity" json:"quantity"`
	Buyer         string    `bson:"buyer,omitempty" json:"buyer,omitempty"`
	BuyerContact  string    `bson:"buyer_contact,omitempty" json:"buyer_contact,omitempty"`
	PaymentMethod string    `bson:"payment_method,omitempty" json:"payment_method,omitempty"`
	Date          time.Time `bson:"date" json:"date"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// SaleCreate carries the caller-supplied fields for recording a sale.
type SaleCreate struct {
	AnimalID      string    `json:"animal_id" binding:"required"`
	Price         float64   `json:"price" binding:"required"`
	Quantity      int       `json:"quantity"`
	Buyer         string    `json:"buyer"`
	BuyerContact  string    `json:"buyer_contact"`
	PaymentMethod string    `json:"payment_method"`
	Date          time.Time `json:"date"`
}
