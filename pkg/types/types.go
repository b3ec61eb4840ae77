package types

import "fmt"

// Type is one of the fixed primitive types understood by the checker.
// Types are singletons; compare them by pointer.
type Type struct {
	name    string
	jvmName string
}

func (t *Type) Name() string { return t.name }

// JvmName is the type spelling used when rendering Java source.
func (t *Type) JvmName() string { return t.jvmName }

func (t *Type) String() string { return t.name }

var (
	Any        = &Type{name: "Any", jvmName: "Object"}
	Nil        = &Type{name: "Nil", jvmName: "Void"}
	Comparable = &Type{name: "Comparable", jvmName: "Comparable"}
	Boolean    = &Type{name: "Boolean", jvmName: "boolean"}
	Integer    = &Type{name: "Integer", jvmName: "int"}
	Decimal    = &Type{name: "Decimal", jvmName: "double"}
	Character  = &Type{name: "Character", jvmName: "char"}
	String     = &Type{name: "String", jvmName: "String"}
)

var registry = map[string]*Type{
	Any.name:        Any,
	Nil.name:        Nil,
	Comparable.name: Comparable,
	Boolean.name:    Boolean,
	Integer.name:    Integer,
	Decimal.name:    Decimal,
	Character.name:  Character,
	String.name:     String,
}

// accepts lists the types with a non-trivial accepted set. Every other type
// accepts only itself.
var accepts = map[*Type]map[*Type]struct{}{
	Any:        setOf(Any, Comparable, Boolean, Integer, Decimal, Character, String),
	Comparable: setOf(Comparable, Integer, Decimal, Character, String),
	Nil:        setOf(Nil),
}

func setOf(members ...*Type) map[*Type]struct{} {
	out := make(map[*Type]struct{}, len(members))
	for _, m := range members {
		out[m] = struct{}{}
	}
	return out
}

// All returns the registered types in a stable order.
func All() []*Type {
	return []*Type{Any, Nil, Comparable, Boolean, Integer, Decimal, Character, String}
}

// Lookup resolves a type by its source name.
func Lookup(name string) (*Type, error) {
	if t, ok := registry[name]; ok {
		return t, nil
	}
	return nil, &UnknownTypeError{Name: name}
}

// Assignable reports whether a value of type source may be stored where target is declared.
func Assignable(target, source *Type) bool {
	if target == nil || source == nil {
		return false
	}
	if set, ok := accepts[target]; ok {
		_, ok := set[source]
		return ok
	}
	return target == source
}

// RequireAssignable fails with a TypeMismatchError unless source is assignable to target.
func RequireAssignable(target, source *Type) error {
	if Assignable(target, source) {
		return nil
	}
	return &TypeMismatchError{Target: target, Source: source}
}

// TypeMismatchError reports a value type that the target type does not accept.
type TypeMismatchError struct {
	Target *Type
	Source *Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expected %s, received %s", typeName(e.Target), typeName(e.Source))
}

// UnknownTypeError reports a type name outside the registry.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type '%s'", e.Name)
}

func typeName(t *Type) string {
	if t == nil {
		return "<none>"
	}
	return t.name
}
