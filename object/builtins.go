package object

import "fmt"

// Builtins is the ordered registry of host-provided primitives, shared by
// the evaluator, the compiler's symbol table (which hardcodes each name's
// index via DefineBuiltin), and the VM's GetBuiltin opcode. Order matters:
// changing it without recompiling every caller would desync the index.
var Builtins = []struct {
	Name    string
	Builtin *Builtin
}{
	{"len", &Builtin{Fn: func(args ...Value) Value {
		if len(args) != 1 {
			return newBuiltinError("wrong number of arguments. got=%d, want=1", len(args))
		}
		switch arg := args[0].(type) {
		case *String:
			return &Integer{Value: int64(len(arg.Value))}
		case *Array:
			return &Integer{Value: int64(len(arg.Elements))}
		default:
			return newBuiltinError("argument to `len` not supported, got %s", args[0].Type())
		}
	}}},
	{"puts", &Builtin{Fn: func(args ...Value) Value {
		for _, arg := range args {
			fmt.Println(arg.Inspect())
		}
		return NullValue
	}}},
	{"first", &Builtin{Fn: func(args ...Value) Value {
		if len(args) != 1 {
			return newBuiltinError("wrong number of arguments. got=%d, want=1", len(args))
		}
		arr, ok := args[0].(*Array)
		if !ok {
			return newBuiltinError("argument to `first` must be ARRAY, got %s", args[0].Type())
		}
		if len(arr.Elements) > 0 {
			return arr.Elements[0]
		}
		return NullValue
	}}},
	{"last", &Builtin{Fn: func(args ...Value) Value {
		if len(args) != 1 {
			return newBuiltinError("wrong number of arguments. got=%d, want=1", len(args))
		}
		arr, ok := args[0].(*Array)
		if !ok {
			return newBuiltinError("argument to `last` must be ARRAY, got %s", args[0].Type())
		}
		length := len(arr.Elements)
		if length > 0 {
			return arr.Elements[length-1]
		}
		return NullValue
	}}},
	{"rest", &Builtin{Fn: func(args ...Value) Value {
		if len(args) != 1 {
			return newBuiltinError("wrong number of arguments. got=%d, want=1", len(args))
		}
		arr, ok := args[0].(*Array)
		if !ok {
			return newBuiltinError("argument to `rest` must be ARRAY, got %s", args[0].Type())
		}
		length := len(arr.Elements)
		if length > 0 {
			newElements := make([]Value, length-1)
			copy(newElements, arr.Elements[1:length])
			return &Array{Elements: newElements}
		}
		return NullValue
	}}},
	{"push", &Builtin{Fn: func(args ...Value) Value {
		if len(args) != 2 {
			return newBuiltinError("wrong number of arguments. got=%d, want=2", len(args))
		}
		arr, ok := args[0].(*Array)
		if !ok {
			return newBuiltinError("argument to `push` must be ARRAY, got %s", args[0].Type())
		}
		length := len(arr.Elements)
		newElements := make([]Value, length+1)
		copy(newElements, arr.Elements)
		newElements[length] = args[1]
		return &Array{Elements: newElements}
	}}},
}

func newBuiltinError(format string, a ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, a...)}
}

// GetBuiltinByName returns the index of name in Builtins, or -1 if it is
// not registered.
func GetBuiltinByName(name string) int {
	for i, b := range Builtins {
		if b.Name == name {
			return i
		}
	}
	return -1
}
