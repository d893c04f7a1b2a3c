package models

// Settings keys. Each maps to a free-form JSONB blob.
const (
	SettingDeliveryCharges = "delivery_charges"
	SettingStoreInfo       = "store_info"
)

type DeliveryCharges struct {
	Dhaka        float64 `json:"dhaka"`
	OutsideDhaka float64 `json:"outside_dhaka"`
}

// ChargeFor returns the delivery charge for a region flag. Anything that
// is not exactly "dhaka" pays the outside rate.
func (d DeliveryCharges) ChargeFor(region string) float64 {
	if region == "dhaka" {
		return d.Dhaka
	}
	return d.OutsideDhaka
}

// DefaultDeliveryCharges matches the seeded settings row.
func DefaultDeliveryCharges() DeliveryCharges {
	return DeliveryCharges{Dhaka: 50, OutsideDhaka: 100}
}

type StoreInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}
