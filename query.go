package bazaar

import (
	"fmt"
)

// Query modifiers. An empty modifier asks for an exact key lookup,
// "prefix" for a range scan over all keys sharing the given prefix.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is one key-value pair returned from a query.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair builds a Model.
func Pair(key, value []byte) Model {
	return Model{
		Key:   key,
		Value: value,
	}
}

// QueryHandler runs read-only queries against a snapshot of the
// state.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister hooks a set of handlers into a router.
type QueryRegister func(QueryRouter)

// QueryRouter maps query paths to their handlers, in the spirit of
// net/http.ServeMux.
type QueryRouter struct {
	routes map[string]QueryHandler
}

// NewQueryRouter returns an empty router.
func NewQueryRouter() QueryRouter {
	return QueryRouter{
		routes: make(map[string]QueryHandler),
	}
}

// RegisterAll applies each QueryRegister to this router.
func (r QueryRouter) RegisterAll(qr ...QueryRegister) {
	for _, reg := range qr {
		reg(r)
	}
}

// Register adds a handler under the given path. Claiming a path twice
// is a programming error and panics.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("duplicate query route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the handler for this path, nil when unclaimed.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
