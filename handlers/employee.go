package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"shiftclock_backend/db"
	"shiftclock_backend/models"

	"github.com/gin-gonic/gin"
)

type EmployeeStore interface {
	CreateEmployee(ctx context.Context, fullName string) (models.Employee, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
}

type EmployeeHandler struct {
	store EmployeeStore
}

func NewEmployeeHandler(store EmployeeStore) *EmployeeHandler {
	return &EmployeeHandler{store: store}
}

// CreateEmployee handles the creation of a new employee
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req models.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "full_name is required"})
		return
	}

	emp, err := h.store.CreateEmployee(c.Request.Context(), name)
	if errors.Is(err, db.ErrDuplicateEmployee) {
		c.JSON(http.StatusConflict, gin.H{"error": "Employee already exists"})
		return
	}
	if err != nil {
		log.Printf("Error creating employee: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
		return
	}

	c.JSON(http.StatusCreated, emp)
}

// GetEmployees handles retrieving all employees
func (h *EmployeeHandler) GetEmployees(c *gin.Context) {
	employees, err := h.store.ListEmployees(c.Request.Context())
	if err != nil {
		log.Printf("Error listing employees: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employees"})
		return
	}

	c.JSON(http.StatusOK, employees)
}
