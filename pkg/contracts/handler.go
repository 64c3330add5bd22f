package contracts

import "github.com/julienschmidt/httprouter"

// Handler is an HTTP surface that mounts its routes on the shared router
// assembled by app.Application.
type Handler interface {
	RegisterRoutes(router *httprouter.Router)
}
