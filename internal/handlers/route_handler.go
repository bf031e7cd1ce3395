package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moroccotransfers/booking-backend/internal/database"
	"github.com/moroccotransfers/booking-backend/internal/models"
)

// RouteHandler handles admin route management
type RouteHandler struct {
	routeRepo *database.RouteRepository
}

// NewRouteHandler creates a new RouteHandler
func NewRouteHandler(routeRepo *database.RouteRepository) *RouteHandler {
	return &RouteHandler{routeRepo: routeRepo}
}

// GetAll lists all routes
// GET /api/v1/admin/routes
func (h *RouteHandler) GetAll(c *gin.Context) {
	routes, err := h.routeRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch routes"})
		return
	}

	c.JSON(http.StatusOK, routes)
}

// GetByID retrieves a single route
// GET /api/v1/admin/routes/:id
func (h *RouteHandler) GetByID(c *gin.Context) {
	route, err := h.routeRepo.GetByID(c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch route"})
		return
	}

	c.JSON(http.StatusOK, route)
}

// Create adds a new priced corridor
// POST /api/v1/admin/routes
func (h *RouteHandler) Create(c *gin.Context) {
	var req models.RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if msg := req.Validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	route, err := h.routeRepo.Create(&req)
	if err != nil {
		if err == database.ErrDuplicateRoute {
			c.JSON(http.StatusConflict, gin.H{"error": "A route with this pickup and dropoff already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create route"})
		return
	}

	c.JSON(http.StatusCreated, route)
}

// Update replaces a route's corridor and prices
// PUT /api/v1/admin/routes/:id
func (h *RouteHandler) Update(c *gin.Context) {
	routeID := c.Param("id")

	var req models.RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if msg := req.Validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if err := h.routeRepo.Update(routeID, &req); err != nil {
		switch err {
		case sql.ErrNoRows:
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		case database.ErrDuplicateRoute:
			c.JSON(http.StatusConflict, gin.H{"error": "A route with this pickup and dropoff already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update route"})
		}
		return
	}

	route, err := h.routeRepo.GetByID(routeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch updated route"})
		return
	}

	c.JSON(http.StatusOK, route)
}

// Delete removes a route
// DELETE /api/v1/admin/routes/:id
func (h *RouteHandler) Delete(c *gin.Context) {
	if err := h.routeRepo.Delete(c.Param("id")); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete route"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Route deleted"})
}
