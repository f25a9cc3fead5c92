package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/laprovidence/livestock/internal/domain/models"
	"github.com/laprovidence/livestock/internal/repository"
	"github.com/laprovidence/livestock/internal/service/livestock"
)

// AnimalHandler serves animal CRUD endpoints.
type AnimalHandler struct {
	svc    *livestock.Service
	logger *zap.Logger
}

// NewAnimalHandler constructs the HTTP handler adapter.
func NewAnimalHandler(svc *livestock.Service, logger *zap.Logger) *AnimalHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnimalHandler{svc: svc, logger: logger}
}

// Create registers a new animal intake.
func (h *AnimalHandler) Create(c *gin.Context) {
	var input models.AnimalCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid animal payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	animal, err := h.svc.CreateAnimal(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, animal)
}

// List returns animals, optionally filtered by status, species or sex.
func (h *AnimalHandler) List(c *gin.Context) {
	filter := repository.AnimalFilter{}
	if raw := c.Query("status"); raw != "" {
		status, err := models.ParseAnimalStatus(raw)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		filter.Status = status
	}
	if raw := c.Query("species"); raw != "" {
		species, err := models.ParseSpecies(raw)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		filter.Species = species
	}
	if raw := c.Query("sex"); raw != "" {
		sex, err := models.ParseSex(raw)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		filter.Sex = sex
	}

	animals, err := h.svc.ListAnimals(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, animals)
}

// Get returns one animal by id.
func (h *AnimalHandler) Get(c *gin.Context) {
	animal, err := h.svc.GetAnimal(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, animal)
}

// Update applies a partial edit of non-lifecycle fields.
func (h *AnimalHandler) Update(c *gin.Context) {
	var update models.AnimalUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		h.logger.Warn("invalid animal update payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	animal, err := h.svc.UpdateAnimal(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, animal)
}

// Delete removes an animal and cascades to its dependent records.
func (h *AnimalHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteAnimal(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "animal deleted"})
}
