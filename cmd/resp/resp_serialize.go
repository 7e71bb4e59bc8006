// Provide serialization functions for compliance with the REdis Serialization Protocol
// specification, see: https://redis.io/docs/reference/protocol-spec/#resp-protocol-description
package resp

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// SimpleString is sent as a status reply (+OK) instead of a bulk string.
type SimpleString string

const OK = SimpleString("OK")

func Serialize(v any) (string, error) {
	if v == nil {
		return SerializeNil(), nil
	}

	if err, ok := v.(error); ok {
		return SerializeError(err), nil
	}

	switch v := v.(type) {
	case SimpleString:
		return SerializeSimpleStr(string(v)), nil
	case string:
		return SerializeStr(v), nil
	case int:
		return SerializeInt(v), nil
	case bool:
		if v {
			return SerializeInt(1), nil
		}
		return SerializeInt(0), nil
	}

	tp := reflect.TypeOf(v)
	if tp.Kind() != reflect.Slice {
		return "", fmt.Errorf("value '%s' cannot be serialized", tp)
	}

	arr := reflect.ValueOf(v)
	var sb strings.Builder
	sb.WriteString("*" + strconv.Itoa(arr.Len()) + "\r\n")
	for i := 0; i < arr.Len(); i++ {
		r, err := Serialize(arr.Index(i).Interface())
		if err != nil {
			return "", err
		}
		sb.WriteString(r)
	}

	return sb.String(), nil
}

func SerializeNil() string {
	return "$-1\r\n"
}

func SerializeSimpleStr(str string) string {
	return "+" + str + "\r\n"
}

func SerializeStr(str string) string {
	out := "$"
	out += strconv.Itoa(len(str)) + "\r\n"
	out += str + "\r\n"
	return out
}

func SerializeError(err error) string {
	return "-" + err.Error() + "\r\n"
}

func SerializeInt(n int) string {
	return ":" + strconv.Itoa(n) + "\r\n"
}
