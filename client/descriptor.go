package client

import (
	"fmt"
	"net/http"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// jsonSchema aliases the compiled schema type used throughout the route table.
type jsonSchema = jsonschema.Schema

// Descriptor is the static metadata of one API operation: its method, its
// path template and the schema each expected response status must conform to.
// Descriptors are defined once at init and immutable afterwards; all access
// to the API surface goes through a descriptor, so no URL or response shape
// is hardcoded anywhere else.
type Descriptor struct {
	Name   string
	Method string
	// Path is a template with zero or more :name placeholders.
	Path string
	// Input validates the request body of mutations; nil for body-less ops.
	Input *jsonschema.Schema
	// Responses maps an HTTP status code to the schema its body must match.
	// A response matching no declared status is a contract violation.
	Responses map[int]*jsonschema.Schema
	// SoftAuth ops resolve a 401 to an empty result instead of an error:
	// "not logged in" is a valid outcome, not a failure.
	SoftAuth bool
	// NilOnNotFound reads resolve a 404 to a nil result instead of an error.
	NilOnNotFound bool
	// Invalidates lists the path templates of the read keys this mutation
	// renders stale on success. Declared here, not at call sites, so the
	// coupling is auditable in one place.
	Invalidates []string
}

func (d Descriptor) IsRead() bool { return d.Method == http.MethodGet }

var registry = make(map[string]Descriptor)

// register adds a descriptor to the operation registry. Duplicate names are a
// programming error.
func register(d Descriptor) Descriptor {
	if _, dup := registry[d.Name]; dup {
		panic(fmt.Sprintf("client: duplicate operation %q", d.Name))
	}
	registry[d.Name] = d
	return d
}

// Lookup returns the descriptor for an operation name. Unknown names are a
// programming error, not a runtime condition.
func Lookup(name string) Descriptor {
	d, ok := registry[name]
	if !ok {
		panic(fmt.Sprintf("client: unknown operation %q", name))
	}
	return d
}

// Operations returns the names of all registered operations.
func Operations() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

func mustSchema(doc string) *jsonschema.Schema {
	return jsonschema.MustCompileString("schema.json", doc)
}
