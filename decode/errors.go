package decode

import (
	"fmt"
)

type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

type OptionError struct {
	Option  string
	Section string
	File    string
	Position
}

func (e OptionError) Error() string {
	msg := fmt.Sprintf("option %s not recognized in section %s", e.Option, e.Section)
	return withLocation(e.File, e.Position, msg)
}

type DecodeError struct {
	Message string
	File    string
	Position
	Err error
}

func (e DecodeError) Error() string {
	return withLocation(e.File, e.Position, e.Message)
}

func (e DecodeError) Unwrap() error {
	return e.Err
}

func withLocation(file string, pos Position, msg string) string {
	switch {
	case file != "" && !pos.IsZero():
		return fmt.Sprintf("%s:%s: %s", file, pos, msg)
	case file != "":
		return fmt.Sprintf("%s: %s", file, msg)
	case !pos.IsZero():
		return fmt.Sprintf("%s: %s", pos, msg)
	default:
		return msg
	}
}
