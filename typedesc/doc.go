/*
Package typedesc provides the normalized type descriptor model used by the
conversion engine.

A Descriptor identifies a type for conversion purposes: a primitive, a
generic container, a named aggregate with bound or unbound type arguments, a
union of alternatives, a type variable, or a forward reference resolved
against the declaration table. Descriptors are immutable values with
structural equality and a canonical Key, so registries and caches can use
them directly as lookup keys.

Registration patterns are descriptors too: Wildcard positions match any
candidate, and patterns without arguments match any argument list of the
same kind, which is what makes a bare list registration cover list[int]
while a list[int] registration still wins on specificity.

Shape describes an aggregate's fields in declaration order and is supplied
by the declaration table in package registry; the engine substitutes bound
type arguments into field descriptors positionally.
*/
package typedesc
