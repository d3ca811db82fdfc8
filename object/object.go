// Package object defines the values a program evaluates to.
package object

import (
	"fmt"
	"strconv"
)

type ObjectType string

const (
	INTEGER ObjectType = "INTEGER"
	BOOLEAN ObjectType = "BOOLEAN"
	NULL    ObjectType = "NULL"
	ERROR   ObjectType = "ERROR"
)

type Object interface {
	Type() ObjectType
	Inspect() string
}

type Integer struct {
	Value int64
}

func (v Integer) Type() ObjectType { return INTEGER }
func (v Integer) Inspect() string  { return strconv.FormatInt(v.Value, 10) }

type Boolean struct {
	Value bool
}

func (v Boolean) Type() ObjectType { return BOOLEAN }
func (v Boolean) Inspect() string  { return strconv.FormatBool(v.Value) }

type Null struct{}

func (v Null) Type() ObjectType { return NULL }
func (v Null) Inspect() string  { return "null" }

// Error is a runtime error. It is an ordinary value: evaluation hands it back
// instead of failing.
type Error struct {
	Message string
}

func (v Error) Type() ObjectType { return ERROR }
func (v Error) Inspect() string  { return "Error: " + v.Message }

var (
	TRUE  = Boolean{Value: true}
	FALSE = Boolean{Value: false}
	NULLV = Null{}
)

func NativeBool(b bool) Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

func Errorf(format string, args ...interface{}) Error {
	return Error{Message: fmt.Sprintf(format, args...)}
}

func IsError(o Object) bool {
	_, ok := o.(Error)
	return ok
}

// FromNative converts a Go value, such as one decoded from YAML, into an
// Object. It accepts the integer kinds and bool.
func FromNative(v interface{}) (Object, error) {
	switch n := v.(type) {
	case nil:
		return NULLV, nil
	case bool:
		return NativeBool(n), nil
	case int:
		return Integer{Value: int64(n)}, nil
	case int64:
		return Integer{Value: n}, nil
	case int32:
		return Integer{Value: int64(n)}, nil
	case uint64:
		if n > 1<<63-1 {
			return nil, fmt.Errorf("%d does not fit in an integer", n)
		}
		return Integer{Value: int64(n)}, nil
	}
	return nil, fmt.Errorf("unsupported value %v of type %T", v, v)
}
