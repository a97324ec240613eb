package controllers

import (
	"log"
	"net/http"

	"bill-o/apperrors"
	"bill-o/database"
	"bill-o/services"
	"bill-o/store"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"go.uber.org/zap"
)

var validate *validator.Validate = validator.New()

var logger *zap.Logger = mustLogger()

func mustLogger() *zap.Logger {
	l, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	return l
}

var dataStore = store.NewMongo(database.Client, logger)
var tabService = services.NewTabService(dataStore, logger)
var orderService = services.NewOrderService(dataStore, logger)
var projector = services.NewProjector(store.NewWatcher(database.Client, logger), logger)

// errStatus maps the error taxonomy to the HTTP status dashboards key off.
func errStatus(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindState:
		return http.StatusConflict
	case apperrors.KindTransient:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(errStatus(err), gin.H{"error": err.Error()})
}
