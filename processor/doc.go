/*
Package processor generates aggregate registration code from a YAML type
declaration schema.

Schema:

	package: models
	types:
	  User:
	    fields:
	      id: string
	      name: string
	      tags: {type: list[string], required: false}
	  Box:
	    typeParams: [T]
	    fields:
	      value: T

Generated Code:

	func init() {
	    registry.RegisterAggregate[User]("User",
	        registry.WithFieldType("id", typedesc.String()),
	        ...
	    )
	}

Field order in the schema is preserved, since it is the order fields are
converted in. Type expressions support the primitive names plus list, set,
map[string,V], tuple, optional, union (alternatives separated by |), the
declared type parameters, and forward references to other declared types by
name.

This automation reduces boilerplate and keeps declaration files and
registration code consistent.
*/
package processor
