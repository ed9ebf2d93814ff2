package routes

import (
	"time"

	"shiftclock_backend/handlers"
	"shiftclock_backend/middleware"

	"github.com/gin-gonic/gin"
)

// Store is everything the route table needs from persistence. Both
// db.PostgresStore and db.MemoryStore satisfy it.
type Store interface {
	handlers.AttendanceStore
	handlers.RosterStore
	handlers.EmployeeStore
	handlers.Pinger
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine, store Store, jwtSecret []byte, loc *time.Location) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(store)
	attendanceHandler := handlers.NewAttendanceHandler(store, loc)
	rosterHandler := handlers.NewRosterHandler(store, loc)
	employeeHandler := handlers.NewEmployeeHandler(store)

	// Public routes
	r.GET("/health", healthHandler.HealthCheck)

	// Protected routes
	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(jwtSecret))
	{
		// Attendance routes
		protected.POST("/check-in", attendanceHandler.CheckIn)
		protected.POST("/check-out", attendanceHandler.CheckOut)
		protected.GET("/records", attendanceHandler.GetRecords)

		// Roster routes
		protected.GET("/roster", rosterHandler.GetRoster)
		protected.POST("/roster", rosterHandler.CreateRoster)

		// Employee routes
		protected.POST("/employees", employeeHandler.CreateEmployee)
		protected.GET("/employees", employeeHandler.GetEmployees)
	}
}
