package handler

import (
	"time"

	"mypayment-ledger/internal/adapter/http/middleware"
	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/pkg/apperror"
	"mypayment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// caller returns the authenticated user, writing a 401 when there is none.
func caller(c *gin.Context) (domain.AuthenticatedUser, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
	}
	return user, ok
}

// uuidParam parses a path parameter, writing a 400 when it is not a UUID.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, apperror.Validation("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

func validateRange(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return apperror.Validation("end_date must not be before start_date")
	}
	return nil
}
