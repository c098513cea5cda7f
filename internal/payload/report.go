package payload

// CreateComplaintForm is the multipart form for a lost-item report. The
// photo part is handled separately; these are the text fields.
type CreateComplaintForm struct {
	ProductType   string `validate:"required"`
	DateLost      string `validate:"required"`
	LastKnownSpot string `validate:"required"`
	Description   string `validate:"required"`
	Student       string `validate:"required"`
}

// CreateFoundItemForm is the multipart form for logging a found item. The
// image part is required and checked before these fields are validated.
type CreateFoundItemForm struct {
	ItemType      string `validate:"required"`
	Description   string `validate:"required"`
	DateFound     string `validate:"required"`
	LocationFound string `validate:"required"`
	Admin         string `validate:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
