package handler

import "github.com/gin-gonic/gin"

// Error codes on the wire. Clients branch on these, so they are part of the
// API contract.
const (
	CodePriceNotAvailable  = "price_not_available"
	CodeActiveGuessExists  = "active_guess_exists"
	CodeNoActiveGuess      = "no_active_guess"
	CodePriceStale         = "price_stale"
	CodeValidationError    = "validation_error"
	CodeInternalError      = "internal_server_error"
	CodeNoPriceData        = "no_price_data_available"
)

type errorBody struct {
	Error string `json:"error"`
}

func Fail(c *gin.Context, status int, code string) {
	c.JSON(status, errorBody{Error: code})
}
