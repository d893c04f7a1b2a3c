package dto

type ProductRequest struct {
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discount_price"`
	StockQty      int      `json:"stock_qty"`
	SKU           *string  `json:"sku"`
	ImageURL      *string  `json:"image_url"`
	Description   *string  `json:"description"`
	Status        string   `json:"status"`
}

type ProductStatusRequest struct {
	Status string `json:"status"`
}
