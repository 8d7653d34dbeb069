package request_models

type CreatePropertyRequest struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Address     *string  `json:"address" binding:"omitempty,max=512"`
	Phone       *string  `json:"phone" binding:"omitempty,max=64"`
	Website     *string  `json:"website" binding:"omitempty,max=255"`
	Photos      []string `json:"photos" binding:"omitempty,dive,url"`
	Latitude    *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	IsPublished bool     `json:"is_published"`
}

type UpdatePropertyRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=255"`
	Address     *string  `json:"address" binding:"omitempty,max=512"`
	Phone       *string  `json:"phone" binding:"omitempty,max=64"`
	Website     *string  `json:"website" binding:"omitempty,max=255"`
	Photos      []string `json:"photos" binding:"omitempty,dive,url"`
	Latitude    *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	IsPublished *bool    `json:"is_published"`
}
