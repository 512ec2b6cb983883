package model

// Customer is a named buyer. Deletion is blocked at the application
// layer while any Sale references the customer.
type Customer struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);not null;column:nome" json:"nome" validate:"required"`
	Address string `gorm:"type:text;column:endereco" json:"endereco,omitempty"`
	Phone   string `gorm:"type:varchar(30);column:telefone" json:"telefone,omitempty"`
	Active  bool   `gorm:"column:ativo;default:true" json:"ativo"`
}
