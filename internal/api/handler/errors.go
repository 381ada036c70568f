package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/cartcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/cartcenter/internal/infra/client"
	"github.com/RoyceAzure/lab/cartcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/cartcenter/internal/service"
)

// service層錯誤對應HTTP status的轉換表
// handler不重新包裝錯誤訊息，原樣回給caller
func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInsufficientStock):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrCartNotFound),
		errors.Is(err, service.ErrCartItemNotFound),
		errors.Is(err, client.ErrProductNotFound),
		errors.Is(err, client.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUserAlreadyHasCart),
		errors.Is(err, db.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, client.ErrExternalService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func serviceErrorJSON(w http.ResponseWriter, err error) {
	errorJSON(w, statusFromError(err), err.Error())
}

func successJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}
