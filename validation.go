package main

import (
	"math"
	"strings"
)

// FieldKind tells the validator which constraint applies to a field value.
type FieldKind int

const (
	// RequiredString accepts any string which is non-empty after trimming.
	RequiredString FieldKind = iota
	// PositiveNumber accepts any number strictly greater than zero.
	PositiveNumber
	// NonNegativeInteger accepts any integral number greater or equal to zero.
	NonNegativeInteger
)

// FieldRule declares the constraints of a single payload field.
type FieldRule struct {
	Field           string
	Kind            FieldKind
	RequiredMessage string
	InvalidMessage  string
}

// FieldError maps a field name to the message of the rule it violated.
type FieldError map[string]string

// Validate checks a decoded request payload against the rule table of one
// resource kind and collects every violated rule in table order. An empty
// result means the payload is valid. Values are never coerced: a numeric
// string does not satisfy a number rule and vice versa. The payload is
// never mutated and no store access happens here.
func Validate(payload map[string]any, rules []FieldRule) []FieldError {
	errs := []FieldError{}
	for _, rule := range rules {
		if msg, ok := checkField(payload, rule); !ok {
			errs = append(errs, FieldError{rule.Field: msg})
		}
	}
	return errs
}

func checkField(payload map[string]any, rule FieldRule) (string, bool) {
	value, present := payload[rule.Field]
	if !present || value == nil {
		return rule.RequiredMessage, false
	}

	switch rule.Kind {
	case RequiredString:
		s, isString := value.(string)
		if !isString {
			return rule.InvalidMessage, false
		}
		if strings.TrimSpace(s) == "" {
			return rule.RequiredMessage, false
		}
	case PositiveNumber:
		f, isNumber := value.(float64)
		if !isNumber || f <= 0 {
			return rule.InvalidMessage, false
		}
	case NonNegativeInteger:
		f, isNumber := value.(float64)
		if !isNumber || f != math.Trunc(f) || f < 0 {
			return rule.InvalidMessage, false
		}
	}
	return "", true
}

// BookRules is the declarative rule table applied to book payloads.
var BookRules = []FieldRule{
	{Field: "bookId", Kind: RequiredString, RequiredMessage: "Book ID is required", InvalidMessage: "Book ID must be a string"},
	{Field: "title", Kind: RequiredString, RequiredMessage: "Title is required", InvalidMessage: "Title must be a string"},
	{Field: "author", Kind: RequiredString, RequiredMessage: "Author is required", InvalidMessage: "Author must be a string"},
	{Field: "genre", Kind: RequiredString, RequiredMessage: "Genre is required", InvalidMessage: "Genre must be a string"},
	{Field: "price", Kind: PositiveNumber, RequiredMessage: "Price is required", InvalidMessage: "Price must be a positive number"},
	{Field: "stock", Kind: NonNegativeInteger, RequiredMessage: "Stock quantity is required", InvalidMessage: "Stock must be a non-negative integer"},
	{Field: "publishedYear", Kind: NonNegativeInteger, RequiredMessage: "Published year is required", InvalidMessage: "Published year must be a non-negative integer"},
}

// UserRules is the declarative rule table applied to user payloads.
var UserRules = []FieldRule{
	{Field: "userId", Kind: RequiredString, RequiredMessage: "User ID is required", InvalidMessage: "User ID must be a string"},
	{Field: "firstName", Kind: RequiredString, RequiredMessage: "First name is required", InvalidMessage: "First name must be a string"},
	{Field: "lastName", Kind: RequiredString, RequiredMessage: "Last name is required", InvalidMessage: "Last name must be a string"},
	{Field: "email", Kind: RequiredString, RequiredMessage: "Email is required", InvalidMessage: "Email must be a string"},
	{Field: "password", Kind: RequiredString, RequiredMessage: "Password is required", InvalidMessage: "Password must be a string"},
	{Field: "role", Kind: RequiredString, RequiredMessage: "Role is required", InvalidMessage: "Role must be a string"},
	{Field: "createdAt", Kind: RequiredString, RequiredMessage: "Creation date is required", InvalidMessage: "Creation must be a string"},
	{Field: "address", Kind: RequiredString, RequiredMessage: "Address is required", InvalidMessage: "Address must be a string"},
}

// OrderRules is the declarative rule table applied to order payloads.
var OrderRules = []FieldRule{
	{Field: "userId", Kind: RequiredString, RequiredMessage: "User ID is required", InvalidMessage: "User ID must be a string"},
	{Field: "bookId", Kind: RequiredString, RequiredMessage: "Book ID is required", InvalidMessage: "Book ID must be a string"},
	{Field: "quantity", Kind: NonNegativeInteger, RequiredMessage: "Quantity is required", InvalidMessage: "Quantity must be a non-negative integer"},
	{Field: "totalPrice", Kind: PositiveNumber, RequiredMessage: "Total Price is required", InvalidMessage: "Total Price must be a positive number"},
	{Field: "orderDate", Kind: RequiredString, RequiredMessage: "Order date is required", InvalidMessage: "Order date must be a string"},
	{Field: "status", Kind: RequiredString, RequiredMessage: "Status is required", InvalidMessage: "Status must be a string"},
	{Field: "shippingAddress", Kind: RequiredString, RequiredMessage: "Shipping address is required", InvalidMessage: "Shipping address be a string"},
}

// ReviewRules is the declarative rule table applied to review payloads.
var ReviewRules = []FieldRule{
	{Field: "userId", Kind: RequiredString, RequiredMessage: "User ID is required", InvalidMessage: "User ID must be a string"},
	{Field: "bookId", Kind: RequiredString, RequiredMessage: "Book ID is required", InvalidMessage: "Book ID must be a string"},
	{Field: "rating", Kind: NonNegativeInteger, RequiredMessage: "Rating is required", InvalidMessage: "Rating must be a non-negative integer"},
	{Field: "comment", Kind: RequiredString, RequiredMessage: "Comment is required", InvalidMessage: "Comment must be a string"},
	{Field: "reviewDate", Kind: RequiredString, RequiredMessage: "Review date is required", InvalidMessage: "Review date must be a string"},
}
