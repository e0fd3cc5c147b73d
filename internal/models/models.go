package models

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null"                 json:"name"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null"                 json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null"                 json:"price"`
	IVA         float64 `gorm:"default:0.19"             json:"iva"`
	ImageURL    string  `json:"image_url"`
	CategoryID  *uint   `gorm:"index"                    json:"category_id"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement"              json:"id"`
	UserID    uint `gorm:"uniqueIndex:idx_user_product;not null" json:"user_id"`
	ProductID uint `gorm:"uniqueIndex:idx_user_product;not null" json:"product_id"`
	Quantity  uint `gorm:"default:1;check:quantity>0"            json:"quantity"`
}

type Order struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint        `gorm:"index;not null"           json:"user_id"`
	TotalAmount float64     `gorm:"not null"                 json:"total_amount"`
	CreatedAt   int64       `gorm:"autoCreateTime"           json:"created_at"`
	Items       []OrderItem `gorm:"foreignKey:OrderID"       json:"items"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"   json:"id"`
	OrderID   uint    `gorm:"index;not null"             json:"order_id"`
	ProductID uint    `gorm:"not null"                   json:"product_id"`
	Quantity  uint    `gorm:"default:1;check:quantity>0" json:"quantity"`
	Price     float64 `gorm:"not null"                   json:"price"`
}
