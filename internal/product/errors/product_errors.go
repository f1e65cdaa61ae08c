package producterrors

import (
	"net/http"

	"github.com/NicBab/x-tech-app-server/internal/shared/apperror"
)

var (
	ErrProductNotFound = apperror.New(
		apperror.CodeNotFound,
		"product not found",
		http.StatusNotFound,
	)
	ErrInvalidProductID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid product id",
		http.StatusBadRequest,
	)
	ErrDuplicateSKU = apperror.New(
		apperror.CodeConflict,
		"a product with this SKU already exists",
		http.StatusConflict,
	)
	ErrNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"product name is required",
		http.StatusBadRequest,
	)
)
