/*
Package errors provides semantic error types for the typeconv library.

The package defines the conversion failure scenarios with specific types
that can be checked using the standard errors.Is() function or the provided
helper functions.

Common Errors:

	var (
	    ErrUnsupportedType     = errors.New("unsupported type")
	    ErrUnboundTypeVariable = errors.New("unbound type variable")
	    ErrShapeMismatch       = errors.New("shape mismatch")
	    ErrMissingField        = errors.New("missing required field")
	    ErrNoMatchingUnionCase = errors.New("no matching union case")
	    ErrMissingDependency   = errors.New("missing dependency")
	    ErrAsyncRequired       = errors.New("async converter requires context entry point")
	)

Usage:

	v, err := typeconv.FromJSON(target, input)
	if err != nil {
	    if errors.IsMissingField(err) {
	        // the input map lacked a required aggregate field
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewMissingField("User", "id")
	err := errors.NewShapeMismatch("array", "string")

Aggregate converters annotate failures with the aggregate and field name as
they propagate, so a deeply nested failure reads as a path, for example
"Order.items: [2]: expected int, got string". The typed errors survive the
wrapping and still match their sentinels through errors.Is.
*/
package errors
