package models

type Employee struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
}

type CreateEmployeeRequest struct {
	FullName string `json:"full_name" binding:"required"`
}
