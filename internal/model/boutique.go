package model

// Boutique is a physical store; sales and clerks are partitioned by it.
type Boutique struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Address string `gorm:"type:varchar(255)" json:"address"`
	City    string `gorm:"type:varchar(100)" json:"city"`
	Phone   string `gorm:"type:varchar(30)" json:"phone"`
}
