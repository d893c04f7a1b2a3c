package dto

type AddTrackingEventRequest struct {
	Status  string  `json:"status"`
	Message *string `json:"message"`
}
