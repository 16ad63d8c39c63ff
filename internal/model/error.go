package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeProductUnavailable = "PRODUCT_UNAVAILABLE"
	ErrCodeInsufficientStock  = "INSUFFICIENT_STOCK"
	ErrCodeInvalidCoupon      = "INVALID_COUPON"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError is a business-rule or validation failure that is safe to
// surface to the client verbatim.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrEmptyCart          = NewDomainError(ErrCodeEmptyCart, "Sepet boş")
	ErrProductUnavailable = NewDomainError(ErrCodeProductUnavailable, "Bazı ürünler artık mevcut değil")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidCoupon      = NewDomainError(ErrCodeInvalidCoupon, "Geçersiz kupon kodu")
	ErrEmailTaken         = NewDomainError(ErrCodeEmailTaken, "Bu e-posta adresi zaten kayıtlı")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCredentials, "E-posta veya şifre hatalı")
	ErrUnauthorised       = NewDomainError(ErrCodeUnauthorised, "Giriş yapmalısınız")
	ErrOrderNotFound      = NewDomainError(ErrCodeNotFound, "Sipariş bulunamadı")
	ErrProductNotFound    = NewDomainError(ErrCodeNotFound, "Ürün bulunamadı")
)
