package main

import (
	"github.com/julienschmidt/httprouter"
)

// MiddlewareMap contains middlewares chain to
// use for public-facing and ops requests.
type MiddlewareMap struct {
	public func(httprouter.Handle) httprouter.Handle
	ops    func(httprouter.Handle) httprouter.Handle
}

// SetupRoutes injects resource and ops related endpoints if required.
func (api *APIHandler) SetupRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.NotFound = api.NotFound()
	router.GET("/", m.public(api.Index))
	router.GET("/status", m.public(api.Status))
	api.SetupResourceRoutes(router, m)
	if api.config.OpsEndpointsEnable {
		api.SetupOpsRoutes(router, m)
	}
	return router
}

// SetupResourceRoutes injects the five crud endpoints of each resource
// kind. Write operations go through the auth gate when the resource is
// listed in the gating policy table; read operations never do.
func (api *APIHandler) SetupResourceRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	for _, res := range []Resource{BooksResource, UsersResource, OrdersResource, ReviewsResource} {
		gate := api.WriteGate(res)
		router.GET("/"+res.Collection, m.public(api.ListResources(res)))
		router.GET("/"+res.Collection+"/:id", m.public(api.GetOneResource(res)))
		router.POST("/"+res.Collection, m.public(gate(api.CreateResource(res))))
		router.PUT("/"+res.Collection+"/:id", m.public(gate(api.UpdateResource(res))))
		router.DELETE("/"+res.Collection+"/:id", m.public(gate(api.DeleteResource(res))))
	}
	return router
}

// WriteGate returns the auth gate middleware when the resource write
// operations are gated by configuration, or a passthrough otherwise.
func (api *APIHandler) WriteGate(res Resource) MiddlewareFunc {
	for _, name := range api.config.Auth.GatedResources {
		if name == res.Collection {
			return api.AuthGateMiddleware
		}
	}
	return func(next httprouter.Handle) httprouter.Handle { return next }
}
