package builtins

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/unijord/tplfuncs/pkg/value"
)

func execLowercase(args ...value.Value) (value.Value, error) {
	return strings.ToLower(args[0].(string)), nil
}

func execUppercase(args ...value.Value) (value.Value, error) {
	return strings.ToUpper(args[0].(string)), nil
}

func execLen(args ...value.Value) (value.Value, error) {
	switch v := args[0].(type) {
	case string:
		return int64(utf8.RuneCountInString(v)), nil
	case []any:
		return int64(len(v)), nil
	}
	return nil, badArguments("len")
}

func execStr(args ...value.Value) (value.Value, error) {
	return value.ToString(args[0]), nil
}

func execStrip(args ...value.Value) (value.Value, error) {
	return strings.TrimFunc(args[0].(string), unicode.IsSpace), nil
}

func execLstrip(args ...value.Value) (value.Value, error) {
	return strings.TrimLeftFunc(args[0].(string), unicode.IsSpace), nil
}

func execRstrip(args ...value.Value) (value.Value, error) {
	return strings.TrimRightFunc(args[0].(string), unicode.IsSpace), nil
}
