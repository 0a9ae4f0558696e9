package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validBookPayload() map[string]any {
	return map[string]any{
		"bookId":        "B001",
		"title":         "T",
		"author":        "A",
		"genre":         "Fiction",
		"price":         19.99,
		"stock":         float64(5),
		"publishedYear": float64(2000),
	}
}

// TestValidateValidPayloads ensures fully valid payloads produce no field errors.
func TestValidateValidPayloads(t *testing.T) {
	assert.Empty(t, Validate(validBookPayload(), BookRules))

	user := map[string]any{
		"userId": "U001", "firstName": "Ada", "lastName": "Lovelace",
		"email": "ada@example.com", "password": "secret", "role": "admin",
		"createdAt": "2024-01-01", "address": "12 Analytical St",
	}
	assert.Empty(t, Validate(user, UserRules))

	order := map[string]any{
		"userId": "U001", "bookId": "B001", "quantity": float64(0),
		"totalPrice": 39.98, "orderDate": "2024-01-02", "status": "pending",
		"shippingAddress": "12 Analytical St",
	}
	assert.Empty(t, Validate(order, OrderRules))

	review := map[string]any{
		"userId": "U001", "bookId": "B001", "rating": float64(4),
		"comment": "great", "reviewDate": "2024-01-03",
	}
	assert.Empty(t, Validate(review, ReviewRules))
}

// TestValidateMissingFields ensures each absent required field
// produces its own error entry naming the field.
func TestValidateMissingFields(t *testing.T) {
	for _, rule := range BookRules {
		payload := validBookPayload()
		delete(payload, rule.Field)
		errs := Validate(payload, BookRules)
		assert.Len(t, errs, 1)
		assert.Equal(t, rule.RequiredMessage, errs[0][rule.Field])
	}
}

// TestValidateCollectsAllErrors ensures every violated rule is reported,
// in rule table order, not just the first one.
func TestValidateCollectsAllErrors(t *testing.T) {
	errs := Validate(map[string]any{}, BookRules)
	assert.Len(t, errs, len(BookRules))
	for i, rule := range BookRules {
		assert.Equal(t, rule.RequiredMessage, errs[i][rule.Field])
	}
}

// TestValidateTypeMismatch ensures values are never coerced across types.
func TestValidateTypeMismatch(t *testing.T) {
	t.Run("number where string expected", func(t *testing.T) {
		payload := validBookPayload()
		payload["title"] = float64(42)
		errs := Validate(payload, BookRules)
		assert.Len(t, errs, 1)
		assert.Equal(t, "Title must be a string", errs[0]["title"])
	})

	t.Run("numeric string where number expected", func(t *testing.T) {
		payload := validBookPayload()
		payload["price"] = "19.99"
		errs := Validate(payload, BookRules)
		assert.Len(t, errs, 1)
		assert.Equal(t, "Price must be a positive number", errs[0]["price"])
	})

	t.Run("whitespace only string is empty", func(t *testing.T) {
		payload := validBookPayload()
		payload["genre"] = "   "
		errs := Validate(payload, BookRules)
		assert.Len(t, errs, 1)
		assert.Equal(t, "Genre is required", errs[0]["genre"])
	})
}

// TestValidateRangeConstraints covers the numeric range rules of
// each resource kind.
func TestValidateRangeConstraints(t *testing.T) {
	t.Run("price must be strictly positive", func(t *testing.T) {
		for _, price := range []float64{0, -1.5} {
			payload := validBookPayload()
			payload["price"] = price
			errs := Validate(payload, BookRules)
			assert.Len(t, errs, 1)
			assert.Equal(t, "Price must be a positive number", errs[0]["price"])
		}
	})

	t.Run("stock must be a non-negative integer", func(t *testing.T) {
		for _, stock := range []float64{-1, 2.5} {
			payload := validBookPayload()
			payload["stock"] = stock
			errs := Validate(payload, BookRules)
			assert.Len(t, errs, 1)
			assert.Equal(t, "Stock must be a non-negative integer", errs[0]["stock"])
		}
	})

	t.Run("order quantity and total price", func(t *testing.T) {
		order := map[string]any{
			"userId": "U001", "bookId": "B001", "quantity": float64(-2),
			"totalPrice": float64(0), "orderDate": "2024-01-02", "status": "pending",
			"shippingAddress": "12 Analytical St",
		}
		errs := Validate(order, OrderRules)
		assert.Len(t, errs, 2)
		assert.Equal(t, "Quantity must be a non-negative integer", errs[0]["quantity"])
		assert.Equal(t, "Total Price must be a positive number", errs[1]["totalPrice"])
	})

	t.Run("review rating", func(t *testing.T) {
		review := map[string]any{
			"userId": "U001", "bookId": "B001", "rating": float64(-1),
			"comment": "meh", "reviewDate": "2024-01-03",
		}
		errs := Validate(review, ReviewRules)
		assert.Len(t, errs, 1)
		assert.Equal(t, "Rating must be a non-negative integer", errs[0]["rating"])
	})
}

// TestValidateDoesNotMutatePayload ensures the validator never touches its input.
func TestValidateDoesNotMutatePayload(t *testing.T) {
	payload := validBookPayload()
	_ = Validate(payload, BookRules)
	assert.Equal(t, validBookPayload(), payload)
}

// TestParseDocumentID ensures the identifier guard only lets through the
// store's 24 hexadecimal characters format.
func TestParseDocumentID(t *testing.T) {
	_, ok := ParseDocumentID("aaaaaaaaaaaaaaaaaaaaaaaa")
	assert.True(t, ok)

	oid, ok := ParseDocumentID("65a1b2c3d4e5f6a7b8c9d0e1")
	assert.True(t, ok)
	assert.Equal(t, "65a1b2c3d4e5f6a7b8c9d0e1", oid.Hex())

	for _, id := range []string{
		"",
		"not-a-valid-id",
		"aaaaaaaaaaaaaaaaaaaaaaa",   // 23 chars
		"aaaaaaaaaaaaaaaaaaaaaaaaa", // 25 chars
		"zzzzzzzzzzzzzzzzzzzzzzzz",  // not hex
	} {
		_, ok := ParseDocumentID(id)
		assert.False(t, ok, "id %q should be rejected", id)
	}
}
