package domain

// Flower is a catalog entry. Lookup ids are plain columns; the lookup
// tables below exist for listing and filtering, not as enforced FKs.
type Flower struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	Name      string  `json:"name" gorm:"size:100;not null"`
	Variety   string  `json:"variety" gorm:"size:100"`
	Price     float64 `json:"price" gorm:"type:decimal(10,2);not null"`
	TypeID    uint    `json:"typeId"`
	SeasonID  uint    `json:"seasonId"`
	UsageID   uint    `json:"usageId"`
	CountryID uint    `json:"countryId"`
}

type FlowerType struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:100;not null"`
	Description string `json:"description"`
}

type FloweringSeason struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:100;not null"`
	Description string `json:"description"`
}

type FlowerUsage struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:100;not null"`
	Description string `json:"description"`
}

type Country struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:100;not null"`
	Code string `json:"code" gorm:"size:8;not null"`
}

// SellerFlower is the seller attribution relation: a flower may be
// listed by several sellers and a seller lists many flowers.
type SellerFlower struct {
	SellerID uint `json:"sellerId" gorm:"primaryKey;autoIncrement:false"`
	FlowerID uint `json:"flowerId" gorm:"primaryKey;autoIncrement:false"`
}
