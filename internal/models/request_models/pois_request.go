package request_models

type CreatePoiRequest struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Category    string   `json:"category" binding:"required,max=128"`
	Description *string  `json:"description" binding:"omitempty,max=2048"`
	Photos      []string `json:"photos" binding:"omitempty,dive,url"`
	Latitude    *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	IsPublished bool     `json:"is_published"`
}

// UpdatePoiRequest is a merge patch: nil fields are left untouched. The
// position only changes when latitude and longitude are sent together.
type UpdatePoiRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=255"`
	Category    *string  `json:"category" binding:"omitempty,max=128"`
	Description *string  `json:"description" binding:"omitempty,max=2048"`
	Photos      []string `json:"photos" binding:"omitempty,dive,url"`
	Latitude    *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	IsPublished *bool    `json:"is_published"`
}
