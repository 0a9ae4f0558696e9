package main

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Book represents a book record as stored in the books collection.
type Book struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	BookID        string             `bson:"bookId" json:"bookId"`
	Title         string             `bson:"title" json:"title"`
	Author        string             `bson:"author" json:"author"`
	Genre         string             `bson:"genre" json:"genre"`
	Price         float64            `bson:"price" json:"price"`
	Stock         int                `bson:"stock" json:"stock"`
	PublishedYear int                `bson:"publishedYear" json:"publishedYear"`
}

// User represents a user record as stored in the users collection.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID    string             `bson:"userId" json:"userId"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"password"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt string             `bson:"createdAt" json:"createdAt"`
	Address   string             `bson:"address" json:"address"`
}

// Order represents an order record as stored in the orders collection.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID          string             `bson:"userId" json:"userId"`
	BookID          string             `bson:"bookId" json:"bookId"`
	Quantity        int                `bson:"quantity" json:"quantity"`
	TotalPrice      float64            `bson:"totalPrice" json:"totalPrice"`
	OrderDate       string             `bson:"orderDate" json:"orderDate"`
	Status          string             `bson:"status" json:"status"`
	ShippingAddress string             `bson:"shippingAddress" json:"shippingAddress"`
}

// Review represents a review record as stored in the reviews collection.
type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID     string             `bson:"userId" json:"userId"`
	BookID     string             `bson:"bookId" json:"bookId"`
	Rating     int                `bson:"rating" json:"rating"`
	Comment    string             `bson:"comment" json:"comment"`
	ReviewDate string             `bson:"reviewDate" json:"reviewDate"`
}

// MessageResponse is the data model sent on confirmations and
// on failures detected before any store access.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the data model sent when a store call failed. The raw
// error text travels in the body on purpose, see the handler boundary policy.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ValidationFailureResponse is the data model sent when the schema
// validation of a request payload reported at least one field error.
type ValidationFailureResponse struct {
	Success bool         `json:"success"`
	Errors  []FieldError `json:"errors"`
}

// InsertResponse mirrors the store insert acknowledgment returned on
// resource creation. Kept as the success body of POST operations instead
// of the created document to preserve the existing API contract.
type InsertResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// UpdateResponse is the data model sent when an update matched a document.
type UpdateResponse struct {
	Message       string `json:"message"`
	ModifiedCount int64  `json:"modifiedCount"`
}

// WriteJSON sends any response payload to the client with the given status.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}
