package errcode

import (
	"errors"
	"testing"
)

type coded struct{ c Code }

func (e coded) Error() string { return "coded" }
func (e coded) Code() Code    { return e.c }

func TestOf(t *testing.T) {
	if Of(nil) != OK {
		t.Fatalf("Of(nil) != OK")
	}
	if Of(UnknownCommand) != UnknownCommand {
		t.Fatalf("Of(Code) should pass through")
	}
	if Of(coded{c: NotReady}) != NotReady {
		t.Fatalf("Of(coder) should unwrap")
	}
	if Of(errors.New("boom")) != Error {
		t.Fatalf("Of(plain error) should fall back to Error")
	}
}
