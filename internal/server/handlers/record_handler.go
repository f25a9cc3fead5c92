package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/laprovidence/livestock/internal/domain/models"
	"github.com/laprovidence/livestock/internal/service/livestock"
)

// RecordHandler serves the recorded-action endpoints: sales, medical
// interventions, breeding events, birth outcomes and financial entries.
type RecordHandler struct {
	svc    *livestock.Service
	logger *zap.Logger
}

// NewRecordHandler constructs the HTTP handler adapter.
func NewRecordHandler(svc *livestock.Service, logger *zap.Logger) *RecordHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordHandler{svc: svc, logger: logger}
}

// RecordSale sells an animal.
func (h *RecordHandler) RecordSale(c *gin.Context) {
	var input models.SaleCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid sale payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sale, err := h.svc.RecordSale(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

// ListSales returns every recorded sale.
func (h *RecordHandler) ListSales(c *gin.Context) {
	sales, err := h.svc.ListSales(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// RecordMedical stores a veterinary intervention.
func (h *RecordHandler) RecordMedical(c *gin.Context) {
	var input models.MedicalCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid medical payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.svc.RecordMedical(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// ListMedical returns the medical history of one animal.
func (h *RecordHandler) ListMedical(c *gin.Context) {
	records, err := h.svc.ListMedicalRecords(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// RecordBreeding registers a mating or insemination event.
func (h *RecordHandler) RecordBreeding(c *gin.Context) {
	var input models.BreedingCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid breeding payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.svc.RecordBreeding(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// RecordBirth closes an open breeding record with its outcome.
func (h *RecordHandler) RecordBirth(c *gin.Context) {
	var outcome models.BirthOutcome
	if err := c.ShouldBindJSON(&outcome); err != nil {
		h.logger.Warn("invalid birth payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.svc.RecordBirth(c.Request.Context(), c.Param("id"), outcome)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// ListReproduction returns the breeding history of one animal.
func (h *RecordHandler) ListReproduction(c *gin.Context) {
	records, err := h.svc.ListReproductionRecords(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// RecordFinancial stores an expense or revenue entry.
func (h *RecordHandler) RecordFinancial(c *gin.Context) {
	var input models.FinancialCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid financial payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.svc.RecordFinancial(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// ListHistory returns the event ledger, herd-wide or scoped by animal_id.
func (h *RecordHandler) ListHistory(c *gin.Context) {
	events, err := h.svc.ListHistory(c.Request.Context(), c.Query("animal_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
