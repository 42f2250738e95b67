package core

// validation.go turns raw form text into records.
//
// Rules run in a fixed order and stop at the first failure, so a form can
// report exactly one field and move focus to it. Input is whitespace-trimmed
// before any check. Validation never touches the store.

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Reason identifies why a field was rejected.
type Reason string

const (
	ReasonRequired     Reason = "required"
	ReasonNotNumeric   Reason = "not_numeric"
	ReasonNotInteger   Reason = "not_integer"
	ReasonNegative     Reason = "negative"
	ReasonInvalidEmail Reason = "invalid_email"
)

// Field names as shown on the forms.
const (
	FieldName        = "name"
	FieldCategory    = "category"
	FieldPrice       = "price"
	FieldQuantity    = "quantity"
	FieldDescription = "description"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldAddress     = "address"
)

// ValidationError describes the first field that failed validation.
type ValidationError struct {
	Field   string // Form field name
	Value   string // The rejected (trimmed) text
	Reason  Reason
	Message string // Human-readable message for the form
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ProductRules selects which optional product fields a form requires.
// The zero value requires only name, price and quantity.
type ProductRules struct {
	RequireCategory    bool
	RequireDescription bool
}

var emailPattern = regexp.MustCompile(`^[^@]+@.+$`)

// ValidateProduct checks the input and returns a transient Product.
func ValidateProduct(in ProductInput, rules ProductRules) (Product, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	priceText := strings.TrimSpace(in.Price)
	qtyText := strings.TrimSpace(in.Quantity)
	description := strings.TrimSpace(in.Description)

	if name == "" {
		return Product{}, required(FieldName, "Product name")
	}
	if rules.RequireCategory && category == "" {
		return Product{}, required(FieldCategory, "Category")
	}

	if priceText == "" {
		return Product{}, required(FieldPrice, "Price")
	}
	price, err := strconv.ParseFloat(priceText, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return Product{}, &ValidationError{
			Field:   FieldPrice,
			Value:   priceText,
			Reason:  ReasonNotNumeric,
			Message: "Please enter a valid price!",
		}
	}
	if price < 0 {
		return Product{}, &ValidationError{
			Field:   FieldPrice,
			Value:   priceText,
			Reason:  ReasonNegative,
			Message: "Price must be positive!",
		}
	}

	if qtyText == "" {
		return Product{}, required(FieldQuantity, "Quantity")
	}
	qty, err := strconv.ParseInt(qtyText, 10, 32)
	if err != nil {
		return Product{}, &ValidationError{
			Field:   FieldQuantity,
			Value:   qtyText,
			Reason:  ReasonNotInteger,
			Message: "Please enter a valid quantity!",
		}
	}
	if qty < 0 {
		return Product{}, &ValidationError{
			Field:   FieldQuantity,
			Value:   qtyText,
			Reason:  ReasonNegative,
			Message: "Quantity must be positive!",
		}
	}

	if rules.RequireDescription && description == "" {
		return Product{}, required(FieldDescription, "Description")
	}

	return Product{
		Name:        name,
		Category:    category,
		Price:       price,
		Quantity:    int(qty),
		Description: description,
	}, nil
}

// ValidateBuyer checks the input and returns a transient Buyer.
func ValidateBuyer(in BuyerInput) (Buyer, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)
	address := strings.TrimSpace(in.Address)

	if name == "" {
		return Buyer{}, required(FieldName, "Buyer name")
	}
	if email == "" {
		return Buyer{}, required(FieldEmail, "Email")
	}
	if !emailPattern.MatchString(email) {
		return Buyer{}, &ValidationError{
			Field:   FieldEmail,
			Value:   email,
			Reason:  ReasonInvalidEmail,
			Message: "Please enter a valid email address!",
		}
	}
	if phone == "" {
		return Buyer{}, required(FieldPhone, "Phone")
	}
	if address == "" {
		return Buyer{}, required(FieldAddress, "Address")
	}

	return Buyer{Name: name, Email: email, Phone: phone, Address: address}, nil
}

func required(field, label string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Reason:  ReasonRequired,
		Message: label + " is required!",
	}
}
