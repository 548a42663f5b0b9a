package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"github.com/fydhel24/proyecto-ventas-sub000/internal/apierror"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/middleware"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/model"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// actingUser resolves the authenticated principal from the request claims.
// Returns false (and writes 401) when the token carries malformed ids.
func actingUser(c *gin.Context) (model.ActingUser, bool) {
	actor, err := middleware.ActingUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token invalido o expirado"))
		return model.ActingUser{}, false
	}
	return actor, true
}

// pagination reads ?page and ?limit with sane bounds.
func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// writeServiceError maps domain errors to HTTP status codes. Anything not
// recognized is treated as a bad request with the service's own message;
// messages never include DB internals.
func writeServiceError(c *gin.Context, err error) {
	var stockErr *service.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, apierror.New(stockErr.Error()))
	case errors.Is(err, service.ErrSinPermiso):
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
	case errors.Is(err, service.ErrCajaDuplicada),
		errors.Is(err, service.ErrCajaCerrada),
		errors.Is(err, service.ErrSinCajaAbierta),
		errors.Is(err, service.ErrSolicitudProcesada),
		errors.Is(err, service.ErrVentaAnulada),
		errors.Is(err, service.ErrReservaProcesada),
		errors.Is(err, service.ErrMesaOcupada):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrPagoInsuficiente),
		errors.Is(err, service.ErrPagoInvalido),
		errors.Is(err, service.ErrSinSucursal):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Recurso no encontrado"))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
