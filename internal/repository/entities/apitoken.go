package entities

import (
	"gorm.io/gorm"
)

// ApiToken is a provisioned BitPay API token, one per facade.
type ApiToken struct {
	gorm.Model
	Facade  string `gorm:"uniqueIndex:idx_api_token_facade;type:varchar(16) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;NOT NULL"`
	Token   string `gorm:"type:varchar(256) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;NOT NULL"`
	Comment string `gorm:"type:text CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"`
}

// TableName implements the Tabler interface to change from a pluarlized table name to
// the singular name.
func (ApiToken) TableName() string {
	return "api_token"
}
