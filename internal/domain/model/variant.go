package model

type Variant struct {
	ID        string
	ProductID string
	Sku       string
	Price     string
}
