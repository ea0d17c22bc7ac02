package errors

import (
	"errors"
	"testing"
)

var errWrapped = errors.New("wrapped error")

func TestWrap(t *testing.T) {
	err := Wrap(errWrapped, "Hello, Wrapped!")
	if err.Error() != "Hello, Wrapped!, err: wrapped error" {
		t.Fatalf("error mismatch: %+v", err)
	}
}

func TestField(t *testing.T) {
	err := Field("strategy.parameters.capital", "must be positive")
	if err.Error() != "strategy.parameters.capital: must be positive" {
		t.Fatalf("error mismatch: %+v", err)
	}

	if Path(err) != "strategy.parameters.capital" {
		t.Fatalf("path mismatch: %s", Path(err))
	}

	if Path(New("plain")) != "" {
		t.Fatalf("plain error should have no path")
	}
}

func TestList(t *testing.T) {
	var l List
	if l.Err() != nil {
		t.Fatalf("empty list should not be an error")
	}

	l.Append(nil, Field("general.mode", "missing required field"))
	l.Append(Field("general.session_id", "expected integer"))

	if l.Len() != 2 {
		t.Fatalf("len mismatch: %d", l.Len())
	}

	want := "general.mode: missing required field; general.session_id: expected integer"
	if l.Err().Error() != want {
		t.Fatalf("error mismatch: %s", l.Err().Error())
	}
}

func TestListFlatten(t *testing.T) {
	var inner List
	inner.Append(New("a"), New("b"))

	var outer List
	outer.Append(inner.Err())

	if outer.Len() != 2 {
		t.Fatalf("nested lists should flatten, got %d", outer.Len())
	}
}
