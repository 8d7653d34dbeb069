package db_models

import "gorm.io/datatypes"

type PartnerProperty struct {
	BaseModel
	SpatialColumns
	Name        string  `gorm:"size:255;not null;index"`
	Address     *string `gorm:"size:512"`
	Phone       *string `gorm:"size:64"`
	Website     *string `gorm:"size:255"`
	Photos      datatypes.JSONSlice[string]
	IsPublished bool `gorm:"not null;default:false"`
}

func (PartnerProperty) TableName() string {
	return "properties"
}
