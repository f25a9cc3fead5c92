package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/laprovidence/livestock/internal/domain/models"
)

// respondError maps domain errors onto HTTP status codes with a user-facing
// message. A ledger inconsistency is kept distinguishable so operators can
// reconcile it.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		notFound     *models.NotFoundError
		invalidRef   *models.InvalidReferenceError
		invalidState *models.InvalidStateError
		invalidSex   *models.InvalidSexError
		invalidDate  *models.InvalidDateError
		ledgerErr    *models.LedgerInconsistencyError
	)

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &invalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &invalidRef), errors.As(err, &invalidSex), errors.As(err, &invalidDate), errors.Is(err, models.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &ledgerErr):
		logger.Error("ledger inconsistency", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "state changed but history append failed; manual reconciliation required",
			"detail": err.Error(),
		})
	default:
		logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
