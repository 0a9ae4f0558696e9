package main

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// MiddlewareFunc is a custom type for ease of use.
type MiddlewareFunc func(httprouter.Handle) httprouter.Handle

// Middlewares is a custom type to represent a stack of
// middleware functions used to build a single chain.
type Middlewares []MiddlewareFunc

// responseRecorder wraps http.ResponseWriter to record the
// status code sent to the client for the stats middleware.
type responseRecorder struct {
	http.ResponseWriter
	code  int
	wrote bool
}

func newResponseRecorder(w http.ResponseWriter) *responseRecorder {
	return &responseRecorder{ResponseWriter: w, code: http.StatusOK}
}

func (rec *responseRecorder) WriteHeader(code int) {
	if !rec.wrote {
		rec.code = code
		rec.wrote = true
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *responseRecorder) Status() int {
	return rec.code
}

// CoreMiddleware setup the duration measurement for each request and logs its result.
func (api *APIHandler) CoreMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		start := api.clock.Now()
		requestID := GetValueFromContext(r.Context(), RequestIDContextKey)

		api.logger.Info(
			"request",
			zap.String("request.id", requestID),
			zap.String("request.method", r.Method),
			zap.String("request.path", r.URL.Path),
			zap.String("request.ip", GetRequestSourceIP(r)),
			zap.String("request.agent", r.UserAgent()),
			zap.String("request.referer", r.Referer()),
		)

		next(w, r, ps)
		api.logger.Info(
			"request",
			zap.String("request.id", requestID),
			zap.String("request.method", r.Method),
			zap.String("request.path", r.URL.Path),
			zap.Duration("request.duration", time.Since(start)),
		)
	}
}

// StatusRecorderMiddleware wraps the response writer and counts the
// response status codes into the ops statistics.
func (api *APIHandler) StatusRecorderMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		rec := newResponseRecorder(w)
		next(rec, r, ps)
		api.stats.mu.Lock()
		api.stats.status[rec.Status()]++
		api.stats.mu.Unlock()
	}
}

// RequestsCounterMiddleware increments the number of received requests statistics and add this
// new value to the request context to be used during logging as `request.num` field.
func (api *APIHandler) RequestsCounterMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx := context.WithValue(r.Context(), RequestNumberContextKey, atomic.AddUint64(&api.stats.called, 1))
		r = r.WithContext(ctx)
		next(w, r, ps)
	}
}

// RequestIDMiddleware generates and add a unique id to the request context.
func (api *APIHandler) RequestIDMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		requestID := api.idsHandler.Generate(RequestIDPrefix)
		ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
		r = r.WithContext(ctx)
		next(w, r, ps)
	}
}

// CORSMiddleware intercepts each incoming HTTP calls then apply cors headers on it.
func CORSMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, UPDATE, PATCH, HEAD")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Access-Control-Request-Method, Access-Control-Request-Headers, Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, User-Agent, Accept-Language, Referer, DNT, Connection, Pragma, Cache-Control, TE")
		next(w, r, ps)
	}
}

// MaintenanceCheckMiddleware short-circuits public requests with 503
// while the maintenance mode is enabled.
func (api *APIHandler) MaintenanceCheckMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if api.mode.enabled.Load() {
			requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
			api.respond(w, requestID, http.StatusServiceUnavailable, map[string]interface{}{
				"message": "service currently unvailable.",
				"reason":  api.mode.message,
				"since":   api.mode.started.Format(time.RFC1123),
			})
			return
		}
		next(w, r, ps)
	}
}

// PanicRecoveryMiddleware catches any panic during the request lifecycle and produces
// an error log for further analysis. It sends a failure response to the client with 500.
func (api *APIHandler) PanicRecoveryMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		recovery := func() {
			if err := recover(); err != nil {
				requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
				api.logger.Error("panic occurred", zap.String("request.id", requestID), zap.Any("error", err))
				api.respond(w, requestID, http.StatusInternalServerError, MessageResponse{Message: "failed to process the request."})
			}
		}
		defer recovery()
		next(w, r, ps)
	}
}

// AuthGateMiddleware guards a mutating operation behind an authenticated
// session. The session identifier travels in a cookie and is checked
// against the session store before the handler runs, so a rejected request
// causes no store access and no partial side effects.
func (api *APIHandler) AuthGateMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		requestID := GetValueFromContext(r.Context(), RequestIDContextKey)

		cookie, err := r.Cookie(api.config.Auth.SessionCookie)
		if err != nil || cookie.Value == "" {
			api.logger.Error("request carries no session cookie", zap.String("request.id", requestID))
			api.respond(w, requestID, http.StatusUnauthorized, MessageResponse{Message: "Do not have access. Authentication is required"})
			return
		}

		session, err := api.sessions.Get(r.Context(), cookie.Value)
		if err != nil || session.Expired(api.clock.Now()) {
			api.logger.Error("request session is unknown or expired", zap.String("request.id", requestID), zap.Error(err))
			api.respond(w, requestID, http.StatusUnauthorized, MessageResponse{Message: "Do not have access. Authentication is required"})
			return
		}
		next(w, r, ps)
	}
}

// MiddlewaresStacks provides the middlewares stacks to be used
// for public-facing and internal ops requests.
func (api *APIHandler) MiddlewaresStacks() (*Middlewares, *Middlewares) {
	public := Middlewares{
		api.PanicRecoveryMiddleware,
		api.RequestsCounterMiddleware,
		api.RequestIDMiddleware,
		CORSMiddleware,
		api.MaintenanceCheckMiddleware,
		api.StatusRecorderMiddleware,
		api.CoreMiddleware,
	}
	ops := Middlewares{
		api.PanicRecoveryMiddleware,
		api.RequestsCounterMiddleware,
		api.RequestIDMiddleware,
		api.CoreMiddleware,
	}
	return &public, &ops
}

// Chain wraps a given httprouter.Handle with a list of middlewares.
// It does by starting from the last middleware from the list.
func (m *Middlewares) Chain(h httprouter.Handle) httprouter.Handle {
	if len(*m) == 0 {
		return h
	}
	lg := len(*m)
	handle := (*m)[lg-1](h)

	for i := lg - 2; i >= 0; i-- {
		handle = (*m)[i](handle)
	}

	return handle
}
