// Package object defines the runtime value system for the Monke programming language.
//
// This package implements the tagged-union object system the VM operates on:
// integers, booleans, strings, null, arrays, hashes, compiled functions,
// closures, and builtins. Every Object knows its own stable type tag and how
// to render itself for `puts`/REPL display.
//
// Hash is deliberately an ordered sequence of key/value pairs rather than a
// Go map: the language's hash literals preserve insertion order, and a
// duplicate key written later shadows an earlier one only at lookup time,
// not by overwriting the earlier pair in place.
package object

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dr8co/monkeyvm/code"
	"github.com/dr8co/monkeyvm/position"
)

//nolint:revive
const (
	INTEGER_OBJ  = "INTEGER"
	BOOLEAN_OBJ  = "BOOLEAN"
	STRING_OBJ   = "STRING"
	NULL_OBJ     = "NULL"
	ARRAY_OBJ    = "ARRAY"
	HASH_OBJ     = "HASH"
	FUNCTION_OBJ = "FUNCTION"
	CLOSURE_OBJ  = "CLOSURE"
	BUILTIN_OBJ  = "BUILTIN"
)

// Type represents the type tag of an object.
type Type string

// Object is the interface every Monke runtime value implements.
type Object interface {
	// Type returns the object's stable type tag.
	Type() Type

	// Inspect returns the canonical display form of the object.
	Inspect() string
}

// Integer represents a Monke integer value.
type Integer struct {
	Value int64
}

// Type returns the type of the object.
func (i *Integer) Type() Type { return INTEGER_OBJ }

// Inspect returns a string representation of the object.
func (i *Integer) Inspect() string { return strconv.FormatInt(i.Value, 10) }

// Boolean represents a Monke boolean value.
type Boolean struct {
	Value bool
}

// Type returns the type of the object.
func (b *Boolean) Type() Type { return BOOLEAN_OBJ }

// Inspect returns a string representation of the object.
func (b *Boolean) Inspect() string { return strconv.FormatBool(b.Value) }

// String represents a Monke string value.
type String struct {
	Value string
	// Cache for the hash key to avoid recalculating it.
	hashKey *HashKey
}

// Type returns the type of the object.
func (s *String) Type() Type { return STRING_OBJ }

// Inspect returns a string representation of the object.
func (s *String) Inspect() string { return s.Value }

// Len returns the number of Unicode scalar values (runes) in the string,
// matching the `len` builtin's contract for STRING arguments.
func (s *String) Len() int { return utf8.RuneCountInString(s.Value) }

// Null represents the Monke null value.
type Null struct{}

// Type returns the type of the object.
func (n *Null) Type() Type { return NULL_OBJ }

// Inspect returns a string representation of the object.
func (n *Null) Inspect() string { return "null" }

// Array represents an ordered sequence of Monke values.
type Array struct {
	Elements []Object
}

// Type returns the type of the object.
func (a *Array) Type() Type { return ARRAY_OBJ }

// Inspect returns a string representation of the object.
func (a *Array) Inspect() string {
	var out strings.Builder

	elements := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		elements[i] = e.Inspect()
	}

	out.WriteString("[")
	out.WriteString(strings.Join(elements, ", "))
	out.WriteString("]")

	return out.String()
}

// HashKey identifies a hashable value for equality comparisons as a hash key.
type HashKey struct {
	Type  Type
	Value uint64
}

// HashKey returns the hash key for the object.
func (b *Boolean) HashKey() HashKey {
	var value uint64
	if b.Value {
		value = 1
	}
	return HashKey{Type: b.Type(), Value: value}
}

// HashKey returns the hash key for the object.
func (i *Integer) HashKey() HashKey {
	//nolint:gosec
	return HashKey{Type: i.Type(), Value: uint64(i.Value)}
}

// HashKey returns the hash key for the object.
func (s *String) HashKey() HashKey {
	if s.hashKey != nil {
		return *s.hashKey
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(s.Value))

	hashKey := HashKey{Type: s.Type(), Value: h.Sum64()}
	s.hashKey = &hashKey
	return hashKey
}

// Hashable is implemented by every object type that may be used as a hash key:
// Integer, Boolean, and String.
type Hashable interface {
	HashKey() HashKey
}

// HashPair is one key/value entry of a Hash, kept in insertion order.
type HashPair struct {
	Key   Object
	Value Object
}

// Hash represents a Monke hash as an ordered sequence of key/value pairs.
// Insertion order is preserved for Inspect(); a duplicate key written later
// shadows an earlier one only when looked up (see Get), not by removing the
// earlier pair.
type Hash struct {
	Pairs []HashPair
}

// Type returns the type of the object.
func (h *Hash) Type() Type { return HASH_OBJ }

// Inspect returns a string representation of the object, in insertion order.
func (h *Hash) Inspect() string {
	var out strings.Builder

	pairs := make([]string, 0, len(h.Pairs))
	for _, pair := range h.Pairs {
		pairs = append(pairs, fmt.Sprintf("%s: %s", pair.Key.Inspect(), pair.Value.Inspect()))
	}

	out.WriteString("{")
	out.WriteString(strings.Join(pairs, ", "))
	out.WriteString("}")

	return out.String()
}

// Get scans the hash's pairs in reverse order and returns the first (i.e.
// most recently inserted) value whose key hashes equal to the given key.
// This is the "last write wins" rule for duplicate hash literal keys.
func (h *Hash) Get(key Hashable) (Object, bool) {
	want := key.HashKey()
	for i := len(h.Pairs) - 1; i >= 0; i-- {
		hashable, ok := h.Pairs[i].Key.(Hashable)
		if !ok {
			continue
		}
		if hashable.HashKey() == want {
			return h.Pairs[i].Value, true
		}
	}
	return nil, false
}

// CompiledFunction is a compiled function body: its own instruction stream,
// a position map keyed by offsets into that stream, and arity/local-slot counts. It is
// itself stored in the enclosing Chunk's constant pool, referenced by the
// OpClosure operand.
type CompiledFunction struct {
	// Name is the inferred binding name ("" if the function literal was
	// never bound via `let name = fn(...) {...}`), used by CurrentClosure
	// resolution and by Inspect/stack traces.
	Name string

	NumParameters int
	NumLocals     int

	Instructions code.Instructions
	Positions    []position.Entry
}

// Type returns the object type of the compiled function.
func (c *CompiledFunction) Type() Type { return FUNCTION_OBJ }

// Inspect returns a string representation of the CompiledFunction.
func (c *CompiledFunction) Inspect() string {
	if c.Name != "" {
		return fmt.Sprintf("<compiled fn:%s>", c.Name)
	}
	return "<compiled fn>"
}

// PositionForOffset returns the Position recorded for the given instruction
// offset within this function's own instruction stream.
func (c *CompiledFunction) PositionForOffset(offset int) (position.Position, bool) {
	return position.ForOffset(c.Positions, offset)
}

// Closure pairs a CompiledFunction with the free-variable values it captured
// at the point its OpClosure instruction ran.
type Closure struct {
	Fn   *CompiledFunction
	Free []Object
}

// Type returns the type of the object.
func (c *Closure) Type() Type { return CLOSURE_OBJ }

// Inspect returns a string representation of the Closure.
func (c *Closure) Inspect() string { return "<closure>" }

// Builtin represents a reference to one of the registered builtin functions,
// identified by name; the VM looks the implementation up via the builtins
// registry when it is called.
type Builtin struct {
	Name string
}

// Type returns the type of the object.
func (b *Builtin) Type() Type { return BUILTIN_OBJ }

// Inspect returns a string representation of the Builtin.
func (b *Builtin) Inspect() string { return fmt.Sprintf("<builtin: %s>", b.Name) }

// IsTruthy reports whether obj is considered true in boolean contexts.
// Only Boolean(false) and Null are falsy; everything else, including 0, "",
// and empty arrays/hashes, is truthy.
func IsTruthy(obj Object) bool {
	switch v := obj.(type) {
	case *Boolean:
		return v.Value
	case *Null:
		return false
	default:
		return true
	}
}
