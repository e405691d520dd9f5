package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goidm/identity-backend/pkg/apperrors"
	"github.com/goidm/identity-backend/pkg/response"
	"github.com/goidm/identity-backend/pkg/translation"
)

// respondDomainError maps an application-layer error to a transport status and
// a message localized from the catalog (Accept-Language decides the language).
// The stable error code rides along so clients can branch on it.
func respondDomainError(c *gin.Context, catalog translation.Catalog, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	lang := c.GetHeader("Accept-Language")
	detail := gin.H{
		"code":    string(appErr.Code),
		"message": catalog.Lookup(lang, appErr.Code),
	}
	response.Error[any](c, appErr.HTTPStatus(), "request failed", detail)
}
