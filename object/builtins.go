package object

import (
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/dr8co/monkeyvm/position"
	"github.com/dr8co/monkeyvm/runtimeerr"
)

// BuiltinFunction is the implementation signature for a registered builtin.
// emit is called once per `puts` line and appends it to the VM's captured
// output; other builtins ignore it. Position errors are left zero-valued —
// the VM attaches the call-site position and frame stack as the error
// propagates.
type BuiltinFunction func(args []Object, emit func(string)) (Object, *runtimeerr.Error)

// Builtins is the fixed, ordered builtin registry. Index order is part of
// the stable public surface: the compiler assigns symbol-table builtin
// indices in this order, and OpGetBuiltin operands refer to them by index.
var Builtins = []struct {
	Name string
	Fn   BuiltinFunction
}{
	{"len", builtinLen},
	{"first", builtinFirst},
	{"last", builtinLast},
	{"rest", builtinRest},
	{"push", builtinPush},
	{"puts", builtinPuts},
	{"uuid", builtinUUID},
	{"humanize", builtinHumanize},
}

func wrongArgCount(name string, want, got int) *runtimeerr.Error {
	return runtimeerr.New(runtimeerr.WrongArgumentCount, position.Position{},
		"%s expected %d argument(s), got %d", name, want, got)
}

func invalidArgType(name string, got Object) *runtimeerr.Error {
	return runtimeerr.New(runtimeerr.InvalidArgumentType, position.Position{},
		"argument to `%s` not supported, got %s", name, got.Type())
}

func builtinLen(args []Object, _ func(string)) (Object, *runtimeerr.Error) {
	if len(args) != 1 {
		return nil, wrongArgCount("len", 1, len(args))
	}
	switch arg := args[0].(type) {
	case *String:
		return &Integer{Value: int64(arg.Len())}, nil
	case *Array:
		return &Integer{Value: int64(len(arg.Elements))}, nil
	default:
		return nil, invalidArgType("len", args[0])
	}
}

func builtinFirst(args []Object, _ func(string)) (Object, *runtimeerr.Error) {
	if len(args) != 1 {
		return nil, wrongArgCount("first", 1, len(args))
	}
	arr, ok := args[0].(*Array)
	if !ok {
		return nil, invalidArgType("first", args[0])
	}
	if len(arr.Elements) == 0 {
		return &Null{}, nil
	}
	return arr.Elements[0], nil
}

func builtinLast(args []Object, _ func(string)) (Object, *runtimeerr.Error) {
	if len(args) != 1 {
		return nil, wrongArgCount("last", 1, len(args))
	}
	arr, ok := args[0].(*Array)
	if !ok {
		return nil, invalidArgType("last", args[0])
	}
	if len(arr.Elements) == 0 {
		return &Null{}, nil
	}
	return arr.Elements[len(arr.Elements)-1], nil
}

func builtinRest(args []Object, _ func(string)) (Object, *runtimeerr.Error) {
	if len(args) != 1 {
		return nil, wrongArgCount("rest", 1, len(args))
	}
	arr, ok := args[0].(*Array)
	if !ok {
		return nil, invalidArgType("rest", args[0])
	}
	if len(arr.Elements) == 0 {
		return &Null{}, nil
	}
	newElements := make([]Object, len(arr.Elements)-1)
	copy(newElements, arr.Elements[1:])
	return &Array{Elements: newElements}, nil
}

func builtinPush(args []Object, _ func(string)) (Object, *runtimeerr.Error) {
	if len(args) != 2 {
		return nil, wrongArgCount("push", 2, len(args))
	}
	arr, ok := args[0].(*Array)
	if !ok {
		return nil, invalidArgType("push", args[0])
	}
	newElements := make([]Object, len(arr.Elements)+1)
	copy(newElements, arr.Elements)
	newElements[len(arr.Elements)] = args[1]
	return &Array{Elements: newElements}, nil
}

func builtinPuts(args []Object, emit func(string)) (Object, *runtimeerr.Error) {
	var line string
	for _, arg := range args {
		line += arg.Inspect()
	}
	if emit != nil {
		emit(line)
	}
	return &Null{}, nil
}

func builtinUUID(args []Object, _ func(string)) (Object, *runtimeerr.Error) {
	if len(args) != 0 {
		return nil, wrongArgCount("uuid", 0, len(args))
	}
	return &String{Value: uuid.New().String()}, nil
}

func builtinHumanize(args []Object, _ func(string)) (Object, *runtimeerr.Error) {
	if len(args) != 1 {
		return nil, wrongArgCount("humanize", 1, len(args))
	}
	n, ok := args[0].(*Integer)
	if !ok {
		return nil, invalidArgType("humanize", args[0])
	}
	return &String{Value: humanize.Comma(n.Value)}, nil
}

// GetBuiltinByName returns the implementation and registry index of the
// named builtin, or ok=false if no such builtin is registered.
func GetBuiltinByName(name string) (fn BuiltinFunction, index int, ok bool) {
	for i, def := range Builtins {
		if def.Name == name {
			return def.Fn, i, true
		}
	}
	return nil, 0, false
}
