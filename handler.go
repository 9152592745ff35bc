package bazaar

import (
	"encoding/json"
)

// Handler processes one family of messages, for example "list a
// token" or "settle a sale".
type Handler interface {
	Checker
	Deliverer
}

// Checker is the validation half of a Handler. Keeping it separate
// lets Decorator type its next argument precisely.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is the execution half of a Handler.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps every Handler in the stack with shared behavior
// such as isolation, recovery or logging.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is the setup side of a Router, where handlers claim
// their paths.
type Registry interface {
	Handle(path string, h Handler)
}

// Options carries the raw genesis sections. Each extension looks up
// its own key and parses the json it finds there.
type Options map[string]json.RawMessage

// ReadOptions parses the json under the key into obj. A missing key
// is a silent noop.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer seeds an extension's state from genesis contents.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
