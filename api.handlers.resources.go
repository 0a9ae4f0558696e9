package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// Resource describes one resource kind exposed by the api. Collection is
// both the url segment and the store collection name; Singular and Title
// drive the client-facing message texts.
type Resource struct {
	Collection string
	Singular   string
	Title      string
	Rules      []FieldRule
}

var (
	BooksResource   = Resource{Collection: BooksCollection, Singular: "book", Title: "Book", Rules: BookRules}
	UsersResource   = Resource{Collection: UsersCollection, Singular: "user", Title: "User", Rules: UserRules}
	OrdersResource  = Resource{Collection: OrdersCollection, Singular: "order", Title: "Order", Rules: OrderRules}
	ReviewsResource = Resource{Collection: ReviewsCollection, Singular: "review", Title: "Review", Rules: ReviewRules}
)

// respond sends any payload and logs a failure to do so. Handlers never
// abort on a write failure since there is nothing left to compensate.
func (api *APIHandler) respond(w http.ResponseWriter, requestID string, status int, data any) {
	if err := WriteJSON(w, status, data); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// ListResources provides the handler returning all documents of one
// resource kind as a bare json array.
func (api *APIHandler) ListResources(res Resource) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
		documents, err := api.store.GetAll(r.Context(), res.Collection)
		if err != nil {
			api.logger.Error("failed to fetch all documents", zap.String("resource", res.Collection), zap.String("request.id", requestID), zap.Error(err))
			api.respond(w, requestID, http.StatusInternalServerError, ErrorResponse{Message: "Error fetching " + res.Collection, Error: err.Error()})
			return
		}
		api.logger.Info("success to fetch all documents", zap.String("resource", res.Collection), zap.String("request.id", requestID), zap.Int("total", len(documents)))
		api.respond(w, requestID, http.StatusOK, documents)
	}
}

// GetOneResource provides the handler returning a single document by its
// identifier. The identifier guard fires before any store access.
func (api *APIHandler) GetOneResource(res Resource) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
		id := ps.ByName("id")
		oid, ok := ParseDocumentID(id)
		if !ok {
			api.logger.Error("document id provided is not valid", zap.String("resource", res.Collection), zap.String("document.id", id), zap.String("request.id", requestID))
			api.respond(w, requestID, http.StatusBadRequest, MessageResponse{Message: "Invalid ID format"})
			return
		}

		document, err := api.store.GetOne(r.Context(), res.Collection, oid)
		if err == ErrDocumentNotFound {
			api.logger.Error("document does not exist", zap.String("resource", res.Collection), zap.String("document.id", id), zap.String("request.id", requestID))
			api.respond(w, requestID, http.StatusNotFound, MessageResponse{Message: res.Title + " not found"})
			return
		}
		if err != nil {
			api.logger.Error("failed to fetch document", zap.String("resource", res.Collection), zap.String("document.id", id), zap.String("request.id", requestID), zap.Error(err))
			api.respond(w, requestID, http.StatusInternalServerError, ErrorResponse{Message: "Error fetching " + res.Singular, Error: err.Error()})
			return
		}
		api.logger.Info("success to fetch document", zap.String("resource", res.Collection), zap.String("document.id", id), zap.String("request.id", requestID))
		api.respond(w, requestID, http.StatusOK, document)
	}
}

// CreateResource provides the handler inserting a new document from a
// fully valid payload. The success body is the raw store acknowledgment,
// not the created document.
func (api *APIHandler) CreateResource(res Resource) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
		payload, err := DecodeRequestBody(r)
		if err != nil {
			api.logger.Error("failed to decode create payload", zap.String("resource", res.Collection), zap.String("request.id", requestID), zap.Error(err))
			api.respond(w, requestID, http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Error: err.Error()})
			return
		}

		if fieldErrors := Validate(payload, res.Rules); len(fieldErrors) > 0 {
			api.logger.Error("create payload failed validation", zap.String("resource", res.Collection), zap.String("request.id", requestID), zap.Int("errors", len(fieldErrors)))
			api.respond(w, requestID, http.StatusBadRequest, ValidationFailureResponse{Success: false, Errors: fieldErrors})
			return
		}

		result, err := api.store.Create(r.Context(), res.Collection, payload)
		if err != nil {
			api.logger.Error("failed to create document", zap.String("resource", res.Collection), zap.String("request.id", requestID), zap.Error(err))
			api.respond(w, requestID, http.StatusInternalServerError, ErrorResponse{Message: "Error creating " + res.Singular, Error: err.Error()})
			return
		}
		if !result.Acknowledged {
			api.logger.Error("document insertion was not acknowledged", zap.String("resource", res.Collection), zap.String("request.id", requestID))
			api.respond(w, requestID, http.StatusInternalServerError, MessageResponse{Message: "Failed to create " + res.Singular})
			return
		}
		api.logger.Info("success to create document", zap.String("resource", res.Collection), zap.String("document.id", result.InsertedID), zap.String("request.id", requestID))
		api.respond(w, requestID, http.StatusCreated, InsertResponse{Acknowledged: result.Acknowledged, InsertedID: result.InsertedID})
	}
}

// UpdateResource provides the handler replacing all scalar fields of the
// document matching the identifier. The response message distinguishes an
// actual modification from a replacement which changed no field value.
func (api *APIHandler) UpdateResource(res Resource) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
		id := ps.ByName("id")
		oid, ok := ParseDocumentID(id)
		if !ok {
			api.logger.Error("document id provided is not valid", zap.String("resource", res.Collection), zap.String("document.id", id), zap.String("request.id", requestID))
			api.respond(w, requestID, http.StatusBadRequest, MessageResponse{Message: "Invalid ID format"})
			return
		}

		payload, err := DecodeRequestBody(r)
		if err != nil {
			api.logger.Error("failed to decode update payload", zap.String("resource", res.Collection), zap.String("request.id", requestID), zap.Error(err))
			api.respond(w, requestID, http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Error: err.Error()})
			return
		}

		if fieldErrors := Validate(payload, res.Rules); len(fieldErrors) > 0 {
			api.logger.Error("update payload failed validation", zap.String("resource", res.Collection), zap.String("request.id", requestID), zap.Int("errors", len(fieldErrors)))
			api.respond(w, requestID, http.StatusBadRequest, ValidationFailureResponse{Success: false, Errors: fieldErrors})
			return
		}

		result, err := api.store.Update(r.Context(), res.Collection, oid, payload)
		if err != nil {
			api.logger.Error("failed to update document", zap.String("resource", res.Collection), zap.String("document.id", id), zap.String("request.id", requestID), zap.Error(err))
			api.respond(w, requestID, http.StatusInternalServerError, ErrorResponse{Message: "Error updating " + res.Singular, Error: err.Error()})
			return
		}
		if result.MatchedCount == 0 {
			api.logger.Error("document does not exist", zap.String("resource", res.Collection), zap.String("document.id", id), zap.String("request.id", requestID))
			api.respond(w, requestID, http.StatusNotFound, MessageResponse{Message: res.Title + " not found"})
			return
		}

		message := res.Title + " updated successfully"
		if result.ModifiedCount == 0 {
			message = "No changes were made to the " + res.Singular
		}
		api.logger.Info("success to update document", zap.String("resource", res.Collection), zap.String("document.id", id), zap.String("request.id", requestID), zap.Int64("modified", result.ModifiedCount))
		api.respond(w, requestID, http.StatusOK, UpdateResponse{Message: message, ModifiedCount: result.ModifiedCount})
	}
}

// DeleteResource provides the handler removing the document matching the
// identifier. Responds 200 with a confirmation message on removal.
func (api *APIHandler) DeleteResource(res Resource) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
		id := ps.ByName("id")
		oid, ok := ParseDocumentID(id)
		if !ok {
			api.logger.Error("document id provided is not valid", zap.String("resource", res.Collection), zap.String("document.id", id), zap.String("request.id", requestID))
			api.respond(w, requestID, http.StatusBadRequest, MessageResponse{Message: "Invalid ID format"})
			return
		}

		deleted, err := api.store.Delete(r.Context(), res.Collection, oid)
		if err != nil {
			api.logger.Error("failed to delete document", zap.String("resource", res.Collection), zap.String("document.id", id), zap.String("request.id", requestID), zap.Error(err))
			api.respond(w, requestID, http.StatusInternalServerError, ErrorResponse{Message: "Error deleting " + res.Singular, Error: err.Error()})
			return
		}
		if deleted == 0 {
			api.logger.Error("document does not exist", zap.String("resource", res.Collection), zap.String("document.id", id), zap.String("request.id", requestID))
			api.respond(w, requestID, http.StatusNotFound, MessageResponse{Message: res.Title + " not found"})
			return
		}
		api.logger.Info("success to delete document", zap.String("resource", res.Collection), zap.String("document.id", id), zap.String("request.id", requestID))
		api.respond(w, requestID, http.StatusOK, MessageResponse{Message: res.Title + " deleted successfully"})
	}
}
