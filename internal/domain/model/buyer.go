package model

import "encoding/json"

// SellerConfig holds the payment terms a seller grants the buyer.
type SellerConfig struct {
	TaxID              string
	MaxPaymentTermDays int
}

// BuyerProfile is the credit profile returned by the credit provider.
type BuyerProfile struct {
	TaxID                string
	AvailableCreditCents int64
	SellerConfigs        []SellerConfig
	Raw                  json.RawMessage
}

// SellerConfig returns configuration for the given seller.
func (b *BuyerProfile) SellerConfig(taxID string) (SellerConfig, bool) {
	for _, cfg := range b.SellerConfigs {
		if cfg.TaxID == taxID {
			return cfg, true
		}
	}
	return SellerConfig{}, false
}
