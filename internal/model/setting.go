package model

type Setting struct {
	Key   string `json:"key" gorm:"primaryKey;size:128"`
	Value string `json:"value" gorm:"not null"`
}

func (Setting) TableName() string { return "settings" }
