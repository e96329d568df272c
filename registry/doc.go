/*
Package registry is the process-wide declaration table for aggregate types.

It maps aggregate names to their shapes (field names, declared descriptors,
required flags, defaults, and a Go factory) and Go struct types back to
their registered names. The conversion engine consults it to resolve
aggregate descriptors and forward references by name.

Registration:

	registry.RegisterAggregate[User]("User")

	registry.RegisterAggregate[Box]("Box",
	    registry.WithTypeParams("T"),
	    registry.WithFieldType("value", typedesc.Var("T")),
	)

Shape derivation follows json struct tags: tag names become field names,
pointer and omitempty fields are optional, and nested registered structs
derive to forward references by name, which is what lets self-referential
declarations resolve lazily during conversion.

The registry is thread-safe and should be populated during initialization,
typically in init() functions or through code generated by the processor
package.
*/
package registry
