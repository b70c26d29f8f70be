package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки внешнего каталога
	ErrCatalogUnavailable = fmt.Errorf("catalog unavailable")
	ErrMalformedCatalog   = fmt.Errorf("malformed catalog payload")

	// Ошибки локального хранилища
	ErrMalformedCart      = fmt.Errorf("malformed cart payload")
	ErrStorageUnavailable = fmt.Errorf("local storage unavailable")

	// 400 Bad Request
	ErrStatusBadRequest       = fmt.Errorf("bad request")
	ErrInvalidQuantity        = fmt.Errorf("quantity must be a whole number of at least 1")
	ErrInvalidLineIndex       = fmt.Errorf("invalid line item index")
	ErrSizeRequired           = fmt.Errorf("size is required")
	ErrUnknownSize            = fmt.Errorf("size is not offered for this product")
	ErrMissingProductID       = fmt.Errorf("product id is required")
	ErrPaymentDetailsRequired = fmt.Errorf("payment details are required")

	// 404 Not Found
	ErrProductNotFound  = fmt.Errorf("product not found")
	ErrLineItemNotFound = fmt.Errorf("line item not found")

	// 409 Conflict
	ErrOrderExists = fmt.Errorf("order already exists")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
