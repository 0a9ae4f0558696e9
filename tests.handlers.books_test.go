package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	wellFormedMissingID = "aaaaaaaaaaaaaaaaaaaaaaaa"
	malformedID         = "not-a-valid-id"
)

func decodeBody(t *testing.T, res *http.Response) map[string]interface{} {
	t.Helper()
	data, err := io.ReadAll(res.Body)
	assert.NoError(t, err)
	m := make(map[string]interface{})
	assert.NoError(t, json.Unmarshal(data, &m))
	return m
}

func idParams(id string) httprouter.Params {
	return httprouter.Params{httprouter.Param{Key: "id", Value: id}}
}

// TestListBooksHandler ensures the list operation returns a bare array
// and maps a store fault to 500.
func TestListBooksHandler(t *testing.T) {
	t.Run("empty store returns empty array", func(t *testing.T) {
		mockStore := &MockDocumentStore{
			FindAllFunc: func(ctx context.Context, collection string) ([]bson.M, error) {
				assert.Equal(t, BooksCollection, collection)
				return []bson.M{}, nil
			},
		}
		api := newTestAPIHandler(mockStore, nil)
		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		w := httptest.NewRecorder()
		api.ListResources(BooksResource)(w, req, nil)
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))

		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		var docs []interface{}
		assert.NoError(t, json.Unmarshal(data, &docs))
		assert.NotNil(t, docs)
		assert.Empty(t, docs)
	})

	t.Run("store fault returns 500 with error text", func(t *testing.T) {
		mockStore := &MockDocumentStore{
			FindAllFunc: func(ctx context.Context, collection string) ([]bson.M, error) {
				return nil, errors.New("connection lost")
			},
		}
		api := newTestAPIHandler(mockStore, nil)
		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		w := httptest.NewRecorder()
		api.ListResources(BooksResource)(w, req, nil)
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		m := decodeBody(t, res)
		assert.Equal(t, "Error fetching books", m["message"])
		assert.Equal(t, "connection lost", m["error"])
	})
}

// TestGetOneBookHandler covers the guard, the not-found mapping and the
// success path of the by-ID retrieval.
func TestGetOneBookHandler(t *testing.T) {
	findOneCalls := 0
	mockStore := &MockDocumentStore{
		FindOneFunc: func(ctx context.Context, collection string, id primitive.ObjectID) (bson.M, error) {
			findOneCalls++
			if id.Hex() == wellFormedMissingID {
				return nil, ErrDocumentNotFound
			}
			return bson.M{"_id": id.Hex(), "bookId": "B001", "title": "T"}, nil
		},
	}
	api := newTestAPIHandler(mockStore, nil)

	t.Run("malformed id never reaches the store", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/books/"+malformedID, nil)
		w := httptest.NewRecorder()
		api.GetOneResource(BooksResource)(w, req, idParams(malformedID))
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Invalid ID format", decodeBody(t, res)["message"])
		assert.Equal(t, 0, findOneCalls)
	})

	t.Run("well formed but unknown id yields 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/books/"+wellFormedMissingID, nil)
		w := httptest.NewRecorder()
		api.GetOneResource(BooksResource)(w, req, idParams(wellFormedMissingID))
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Equal(t, "Book not found", decodeBody(t, res)["message"])
		assert.Equal(t, 1, findOneCalls)
	})

	t.Run("match yields the document", func(t *testing.T) {
		id := "65a1b2c3d4e5f6a7b8c9d0e1"
		req := httptest.NewRequest(http.MethodGet, "/books/"+id, nil)
		w := httptest.NewRecorder()
		api.GetOneResource(BooksResource)(w, req, idParams(id))
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode)
		m := decodeBody(t, res)
		assert.Equal(t, "B001", m["bookId"])
		assert.Equal(t, "T", m["title"])
	})
}

// TestCreateBookHandler covers validation rejection, the insert
// acknowledgment contract and the store fault mapping.
func TestCreateBookHandler(t *testing.T) {
	t.Run("valid payload returns the insert result", func(t *testing.T) {
		mockStore := &MockDocumentStore{
			InsertOneFunc: func(ctx context.Context, collection string, document map[string]any) (InsertResult, error) {
				assert.Equal(t, BooksCollection, collection)
				assert.Equal(t, "B001", document["bookId"])
				return InsertResult{Acknowledged: true, InsertedID: wellFormedMissingID}, nil
			},
		}
		api := newTestAPIHandler(mockStore, nil)
		payload, err := json.Marshal(validBookPayload())
		assert.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/books", bytes.NewBuffer(payload))
		w := httptest.NewRecorder()
		api.CreateResource(BooksResource)(w, req, nil)
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusCreated, res.StatusCode)
		m := decodeBody(t, res)
		assert.Equal(t, true, m["acknowledged"])
		assert.Equal(t, wellFormedMissingID, m["insertedId"])
	})

	t.Run("invalid payload is rejected before the store", func(t *testing.T) {
		insertCalls := 0
		mockStore := &MockDocumentStore{
			InsertOneFunc: func(ctx context.Context, collection string, document map[string]any) (InsertResult, error) {
				insertCalls++
				return InsertResult{}, nil
			},
		}
		api := newTestAPIHandler(mockStore, nil)
		payload := validBookPayload()
		delete(payload, "title")
		payload["price"] = float64(-1)
		body, err := json.Marshal(payload)
		assert.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/books", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		api.CreateResource(BooksResource)(w, req, nil)
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		m := decodeBody(t, res)
		assert.Equal(t, false, m["success"])
		fieldErrors, ok := m["errors"].([]interface{})
		assert.True(t, ok)
		assert.Len(t, fieldErrors, 2)
		first, ok := fieldErrors[0].(map[string]interface{})
		assert.True(t, ok)
		assert.Equal(t, "Title is required", first["title"])
		second, ok := fieldErrors[1].(map[string]interface{})
		assert.True(t, ok)
		assert.Equal(t, "Price must be a positive number", second["price"])
		assert.Equal(t, 0, insertCalls)
	})

	t.Run("unacknowledged insert returns 500", func(t *testing.T) {
		mockStore := &MockDocumentStore{
			InsertOneFunc: func(ctx context.Context, collection string, document map[string]any) (InsertResult, error) {
				return InsertResult{Acknowledged: false}, nil
			},
		}
		api := newTestAPIHandler(mockStore, nil)
		body, err := json.Marshal(validBookPayload())
		assert.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/books", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		api.CreateResource(BooksResource)(w, req, nil)
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		assert.Equal(t, "Failed to create book", decodeBody(t, res)["message"])
	})

	t.Run("store fault returns 500 with error text", func(t *testing.T) {
		mockStore := &MockDocumentStore{
			InsertOneFunc: func(ctx context.Context, collection string, document map[string]any) (InsertResult, error) {
				return InsertResult{}, errors.New("storage failure")
			},
		}
		api := newTestAPIHandler(mockStore, nil)
		body, err := json.Marshal(validBookPayload())
		assert.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/books", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		api.CreateResource(BooksResource)(w, req, nil)
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		m := decodeBody(t, res)
		assert.Equal(t, "Error creating book", m["message"])
		assert.Equal(t, "storage failure", m["error"])
	})
}

// TestUpdateBookHandler covers the guard, validation, the not-found
// mapping and the modified-versus-unchanged distinction.
func TestUpdateBookHandler(t *testing.T) {
	newRequest := func(t *testing.T, id string) *http.Request {
		t.Helper()
		body, err := json.Marshal(validBookPayload())
		assert.NoError(t, err)
		return httptest.NewRequest(http.MethodPut, "/books/"+id, bytes.NewBuffer(body))
	}

	t.Run("malformed id never reaches the store", func(t *testing.T) {
		api := newTestAPIHandler(&MockDocumentStore{}, nil)
		w := httptest.NewRecorder()
		api.UpdateResource(BooksResource)(w, newRequest(t, malformedID), idParams(malformedID))
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Invalid ID format", decodeBody(t, res)["message"])
	})

	t.Run("unknown id yields 404", func(t *testing.T) {
		mockStore := &MockDocumentStore{
			UpdateOneFunc: func(ctx context.Context, collection string, id primitive.ObjectID, document map[string]any) (UpdateResult, error) {
				return UpdateResult{MatchedCount: 0}, nil
			},
		}
		api := newTestAPIHandler(mockStore, nil)
		w := httptest.NewRecorder()
		api.UpdateResource(BooksResource)(w, newRequest(t, wellFormedMissingID), idParams(wellFormedMissingID))
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Equal(t, "Book not found", decodeBody(t, res)["message"])
	})

	t.Run("replacement changing a field reports one modification", func(t *testing.T) {
		mockStore := &MockDocumentStore{
			UpdateOneFunc: func(ctx context.Context, collection string, id primitive.ObjectID, document map[string]any) (UpdateResult, error) {
				return UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
			},
		}
		api := newTestAPIHandler(mockStore, nil)
		id := "65a1b2c3d4e5f6a7b8c9d0e1"
		w := httptest.NewRecorder()
		api.UpdateResource(BooksResource)(w, newRequest(t, id), idParams(id))
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode)
		m := decodeBody(t, res)
		assert.Equal(t, "Book updated successfully", m["message"])
		assert.Equal(t, float64(1), m["modifiedCount"])
	})

	t.Run("replacement changing nothing reports zero modification", func(t *testing.T) {
		mockStore := &MockDocumentStore{
			UpdateOneFunc: func(ctx context.Context, collection string, id primitive.ObjectID, document map[string]any) (UpdateResult, error) {
				return UpdateResult{MatchedCount: 1, ModifiedCount: 0}, nil
			},
		}
		api := newTestAPIHandler(mockStore, nil)
		id := "65a1b2c3d4e5f6a7b8c9d0e1"
		w := httptest.NewRecorder()
		api.UpdateResource(BooksResource)(w, newRequest(t, id), idParams(id))
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode)
		m := decodeBody(t, res)
		assert.Equal(t, "No changes were made to the book", m["message"])
		assert.Equal(t, float64(0), m["modifiedCount"])
	})
}

// TestDeleteBookHandler covers the guard, the not-found mapping and the
// 200-with-confirmation success contract.
func TestDeleteBookHandler(t *testing.T) {
	t.Run("malformed id never reaches the store", func(t *testing.T) {
		api := newTestAPIHandler(&MockDocumentStore{}, nil)
		req := httptest.NewRequest(http.MethodDelete, "/books/"+malformedID, nil)
		w := httptest.NewRecorder()
		api.DeleteResource(BooksResource)(w, req, idParams(malformedID))
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Invalid ID format", decodeBody(t, res)["message"])
	})

	t.Run("unknown id yields 404", func(t *testing.T) {
		mockStore := &MockDocumentStore{
			DeleteOneFunc: func(ctx context.Context, collection string, id primitive.ObjectID) (int64, error) {
				return 0, nil
			},
		}
		api := newTestAPIHandler(mockStore, nil)
		req := httptest.NewRequest(http.MethodDelete, "/books/"+wellFormedMissingID, nil)
		w := httptest.NewRecorder()
		api.DeleteResource(BooksResource)(w, req, idParams(wellFormedMissingID))
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Equal(t, "Book not found", decodeBody(t, res)["message"])
	})

	t.Run("removal confirms with 200", func(t *testing.T) {
		mockStore := &MockDocumentStore{
			DeleteOneFunc: func(ctx context.Context, collection string, id primitive.ObjectID) (int64, error) {
				return 1, nil
			},
		}
		api := newTestAPIHandler(mockStore, nil)
		id := "65a1b2c3d4e5f6a7b8c9d0e1"
		req := httptest.NewRequest(http.MethodDelete, "/books/"+id, nil)
		w := httptest.NewRecorder()
		api.DeleteResource(BooksResource)(w, req, idParams(id))
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "Book deleted successfully", decodeBody(t, res)["message"])
	})
}
