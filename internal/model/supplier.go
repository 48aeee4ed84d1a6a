package model

// Supplier provides products. Deleting a supplier cascades to its products.
type Supplier struct {
	BaseModel
	Name          string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
	ContactPerson string `gorm:"type:varchar(255)" json:"contact_person"`
	Email         string `gorm:"type:varchar(255)" json:"email" validate:"required,email"`
	Phone         string `gorm:"type:varchar(50)" json:"phone"`
	Address       string `gorm:"type:text" json:"address"`
}
