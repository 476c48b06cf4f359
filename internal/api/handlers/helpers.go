package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/campwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/campwatch/internal/pkg/utils"
)

// writeServiceError maps a service error onto the response, preserving
// AppError codes and falling back to a 500
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	if appErr, ok := err.(*errors.AppError); ok {
		utils.WriteError(w, appErr)
		return
	}
	utils.WriteError(w, errors.Internal(fallback, err))
}
