package model

type PriceUpdate struct {
	Sku      string
	NewPrice string
}
