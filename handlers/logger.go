package handlers

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"furcare/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func init() {
	// Report binding failures with JSON field names instead of Go struct names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.Split(field.Tag.Get("json"), ",")[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// getLogger retrieves the request-scoped logger set by middleware.RequestLogger, or the global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// bindError turns a request decoding failure into a validation error naming the offending
// field where one can be told, or the body otherwise.
func bindError(c *gin.Context, err error) {
	getLogger(c).Debug("Invalid request payload", zap.Error(err))
	utils.JSONError(c, bindValidationError(err))
}

func bindValidationError(err error) *utils.AppError {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		return utils.NewValidationError(fieldPath(fe), validationMessage(fe))
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return utils.NewValidationError(typeErr.Field, "must be a "+typeErr.Type.String())
	}
	return utils.NewValidationError("body", err.Error())
}

// fieldPath drops the request type from the namespace: "CreateSlotRequest.shopId" becomes
// "shopId" and nested fields keep their dotted path.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	default:
		return "failed " + fe.Tag() + " check"
	}
}
