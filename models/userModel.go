package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Fullname string     `json:"fullname"`
	Email    string     `json:"email" gorm:"uniqueIndex;size:191"`
	Password string     `json:"-"`
	Role     UserRole   `json:"role"`
	Status   UserStatus `json:"status" gorm:"default:active"`
}

type SignupData struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
