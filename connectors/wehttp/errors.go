package wehttp

import (
	"errors"
	"net/http"

	"github.com/weegigs/wee-ledger/ledger"
	"github.com/weegigs/wee-ledger/we"
)

// StatusOf maps a call error to the HTTP status reported for it.
func StatusOf(err error) int {
	var methodNotFound we.MethodNotFoundError
	var contractNotFound we.ContractNotFoundError
	var invalidArguments *we.InvalidArgumentsError
	var invalidContractId *we.InvalidContractIdError

	switch {
	case errors.As(err, &methodNotFound), errors.As(err, &contractNotFound):
		return http.StatusNotFound
	case errors.As(err, &invalidArguments), errors.As(err, &invalidContractId):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrDivideByZero):
		return http.StatusUnprocessableEntity
	case errors.Is(err, we.RevisionConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
