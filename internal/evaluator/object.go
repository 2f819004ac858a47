package evaluator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/funssa/internal/ast"
)

type ObjectType string

const (
	INTEGER_OBJ  = "int"
	BOOLEAN_OBJ  = "bool"
	STRING_OBJ   = "str"
	NONE_OBJ     = "NoneType"
	TUPLE_OBJ    = "tuple"
	FUNCTION_OBJ = "function"
	BUILTIN_OBJ  = "builtin_function_or_method"
	CLASS_OBJ    = "type"
	INSTANCE_OBJ = "object"
)

type Object interface {
	Type() ObjectType
	Inspect() string
}

// Integer
type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return strconv.FormatInt(i.Value, 10) }

// Boolean
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string {
	if b.Value {
		return "True"
	}
	return "False"
}

// String
type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return strconv.Quote(s.Value) }

// None is the value of a bare return and of calls that return nothing.
type None struct{}

func (n *None) Type() ObjectType { return NONE_OBJ }
func (n *None) Inspect() string  { return "None" }

// Tuple
type Tuple struct {
	Elements []Object
}

func (t *Tuple) Type() ObjectType { return TUPLE_OBJ }
func (t *Tuple) Inspect() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.Inspect()
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Function (User defined). Env is the defining scope.
type Function struct {
	Name   string
	Params []string
	Body   []ast.Statement
	Env    *Environment
	Line   int

	// locals are the names the body binds; reading one before it is
	// assigned fails instead of falling through to an outer scope.
	locals map[string]bool
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	return fmt.Sprintf("<function %s(%s)>", f.Name, strings.Join(f.Params, ", "))
}

// BuiltinFunction is the signature every builtin implements.
type BuiltinFunction func(e *Evaluator, args ...Object) (Object, error)

type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "<built-in function " + b.Name + ">" }

// Class is the value a class statement binds; calling it makes an Instance.
type Class struct {
	Name  string
	Attrs map[string]Object
}

func (c *Class) Type() ObjectType { return CLASS_OBJ }
func (c *Class) Inspect() string  { return "<class '" + c.Name + "'>" }

type Instance struct {
	Class *Class
}

func (i *Instance) Type() ObjectType { return INSTANCE_OBJ }
func (i *Instance) Inspect() string  { return "<" + i.Class.Name + " object>" }

// Shared singletons.
var (
	NONE  = &None{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

func nativeBoolToBooleanObject(input bool) *Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

// Truthy follows the usual rules: zero, empty, False and None are false.
func Truthy(obj Object) bool {
	switch o := obj.(type) {
	case *Boolean:
		return o.Value
	case *Integer:
		return o.Value != 0
	case *String:
		return o.Value != ""
	case *Tuple:
		return len(o.Elements) > 0
	case *None:
		return false
	}
	return true
}

// Equal compares by value for data and by identity for everything else.
// Booleans compare equal to the integers 0 and 1.
func Equal(a, b Object) bool {
	if ai, ok := asInt(a); ok {
		if bi, ok := asInt(b); ok {
			return ai == bi
		}
		return false
	}
	switch a := a.(type) {
	case *String:
		bs, ok := b.(*String)
		return ok && a.Value == bs.Value
	case *None:
		_, ok := b.(*None)
		return ok
	case *Tuple:
		bt, ok := b.(*Tuple)
		if !ok || len(a.Elements) != len(bt.Elements) {
			return false
		}
		for i := range a.Elements {
			if !Equal(a.Elements[i], bt.Elements[i]) {
				return false
			}
		}
		return true
	}
	return a == b
}

func asInt(obj Object) (int64, bool) {
	switch o := obj.(type) {
	case *Integer:
		return o.Value, true
	case *Boolean:
		if o.Value {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// ParseValue reads a command-line argument: an integer, True, False, None,
// or otherwise a string.
func ParseValue(s string) Object {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &Integer{Value: n}
	}
	switch s {
	case "True":
		return TRUE
	case "False":
		return FALSE
	case "None":
		return NONE
	}
	return &String{Value: s}
}

// FromGo converts simple Go values, for tests and embedding.
func FromGo(v interface{}) Object {
	switch v := v.(type) {
	case nil:
		return NONE
	case Object:
		return v
	case int:
		return &Integer{Value: int64(v)}
	case int64:
		return &Integer{Value: v}
	case bool:
		return nativeBoolToBooleanObject(v)
	case string:
		return &String{Value: v}
	case []interface{}:
		elems := make([]Object, len(v))
		for i, e := range v {
			elems[i] = FromGo(e)
		}
		return &Tuple{Elements: elems}
	}
	panic(fmt.Sprintf("evaluator: cannot convert %T", v))
}
