package dto

type DeliveryChargesRequest struct {
	Dhaka        float64 `json:"dhaka"`
	OutsideDhaka float64 `json:"outside_dhaka"`
}

type StoreInfoRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type UpdateAdminUserRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}
