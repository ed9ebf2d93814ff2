package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims identifies the employee a request is made on behalf of.
type Claims struct {
	EmployeeID int `json:"employee_id"`
	jwt.RegisteredClaims
}
