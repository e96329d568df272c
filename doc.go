/*
Package typeconv converts untyped, JSON-shaped data into strongly typed
object graphs described by runtime type descriptors, and performs the
inverse for plain-data types.

The core is a type-directed conversion engine: a registry of converters, a
resolution algorithm that picks the best-matching converter for an
arbitrary (possibly generic, possibly union, possibly recursive) type
descriptor, an ordered-fallback policy for union alternatives, and an
extension mechanism that lets converters run asynchronously and receive
externally supplied dependencies.

Basic Usage:

	// Describe the target and register its shape once at startup
	registry.RegisterAggregate[User]("User")

	// Decode a parsed JSON value
	out, err := typeconv.FromJSON(typedesc.Aggregate("User"), input)
	user := out.(*User)

	// Or with the typed convenience wrapper
	user, err := typeconv.FromJSONAs[User](input, nil)

	// Encode back to plain data
	data, err := typeconv.ToJSON(user)

Generic aggregates bind their type arguments through the descriptor:

	registry.RegisterAggregate[Box]("Box",
	    registry.WithTypeParams("T"),
	    registry.WithFieldType("value", typedesc.Var("T")),
	)
	out, err := typeconv.FromJSON(typedesc.Aggregate("Box", typedesc.Int()), input)

Unions commit to the first alternative that converts, in declaration
order; an empty array against union[list[int]|set[int]] is a list. Custom
converters register against descriptor patterns and shadow built-ins:

	typeconv.Register(typedesc.List(typedesc.Int()), myIntListDecoder)

Converters that must await external work implement AsyncDecoder and are
reachable only through FromJSONContext; reaching one from FromJSON fails
with errors.ErrAsyncRequired rather than silently blocking.

The JSON text layer is an external collaborator: the engine consumes and
produces the Value model (nil, bool, int64, float64, string, []Value,
map[string]Value), not JSON text.
*/
package typeconv
