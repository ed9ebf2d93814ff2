package db

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"shiftclock_backend/models"

	"github.com/lib/pq"
)

var ErrDuplicateEmployee = errors.New("employee already exists")

func (s *PostgresStore) CreateEmployee(ctx context.Context, fullName string) (models.Employee, error) {
	emp := models.Employee{FullName: fullName}
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO employees (full_name) VALUES ($1) RETURNING id",
		fullName,
	).Scan(&emp.ID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return models.Employee{}, ErrDuplicateEmployee
	}
	if err != nil {
		return models.Employee{}, fmt.Errorf("error creating employee: %w", err)
	}
	return emp, nil
}

func (s *PostgresStore) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, full_name FROM employees ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("error listing employees: %w", err)
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		var emp models.Employee
		if err := rows.Scan(&emp.ID, &emp.FullName); err != nil {
			return nil, fmt.Errorf("error scanning employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error listing employees: %w", err)
	}
	return employees, nil
}

func (s *MemoryStore) CreateEmployee(ctx context.Context, fullName string) (models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := 1
	for id, name := range s.employees {
		if name == fullName {
			return models.Employee{}, ErrDuplicateEmployee
		}
		if id >= next {
			next = id + 1
		}
	}
	s.employees[next] = fullName
	return models.Employee{ID: next, FullName: fullName}, nil
}

func (s *MemoryStore) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	employees := make([]models.Employee, 0, len(s.employees))
	for id, name := range s.employees {
		employees = append(employees, models.Employee{ID: id, FullName: name})
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })
	return employees, nil
}
