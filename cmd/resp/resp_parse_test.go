package resp

import (
	"bufio"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func read(s string) (any, error) {
	return Read(bufio.NewReader(strings.NewReader(s)))
}

func TestParseBulkString(t *testing.T) {
	v, err := read("$5\r\nhello\r\n")
	if err != nil || v != "hello" {
		t.Error("Expected result to be 'hello'")
	}

	v, err = read("$11\r\nhello\r\nthere\r\n")
	if err != nil || v != "hello\r\nthere" {
		t.Error("Expected bulk string to keep embedded CRLF")
	}

	v, err = read("$-1\r\n")
	if err != nil || v != nil {
		t.Error("Expected nil bulk string to return nil")
	}
}

func TestParseArray(t *testing.T) {
	expected := []any{"rpush", "list", "2", "3"}
	v, err := read("*4\r\n$5\r\nrpush\r\n$4\r\nlist\r\n$1\r\n2\r\n$1\r\n3\r\n")

	if err != nil || !reflect.DeepEqual(v, expected) {
		t.Errorf("Expected %v, got %v", expected, v)
	}
}

func TestParseScalars(t *testing.T) {
	if v, err := read(":42\r\n"); err != nil || v != 42 {
		t.Error("Expected integer 42")
	}
	if v, err := read("+OK\r\n"); err != nil || v != "OK" {
		t.Error("Expected status 'OK'")
	}
	v, err := read("-ERR boom\r\n")
	if e, ok := v.(error); err != nil || !ok || e.Error() != "ERR boom" {
		t.Error("Expected error value 'ERR boom'")
	}
	if v, err := read("ping\r\n"); err != nil || v != "ping" {
		t.Error("Expected inline command to be returned as is")
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := read("\r\n"); !errors.Is(err, ErrEmptyLine) {
		t.Error("Expected ErrEmptyLine")
	}
	if _, err := read("$x\r\n"); err == nil {
		t.Error("Expected invalid length error")
	}
	if _, err := read("$10\r\nshort\r\n"); err == nil {
		t.Error("Expected truncated bulk string error")
	}
	if _, err := read(""); err == nil {
		t.Error("Expected EOF")
	}
}

func TestParseLengthLimits(t *testing.T) {
	if _, err := read("$9223372036854775807\r\n"); err == nil {
		t.Error("Expected oversized bulk length to fail")
	}
	if _, err := read("*9223372036854775807\r\n"); err == nil {
		t.Error("Expected oversized array length to fail")
	}
	if _, err := read("$536870913\r\n"); err == nil {
		t.Error("Expected bulk length above MaxBulkLen to fail")
	}
	if _, err := read("*1048577\r\n"); err == nil {
		t.Error("Expected array length above MaxArrayLen to fail")
	}
	if _, err := read("$-5\r\n"); err == nil {
		t.Error("Expected negative bulk length to fail")
	}

	// Announced length within limits but the data never arrives
	v, err := read("*1000000\r\n$1\r\na\r\n")
	if err == nil {
		t.Error("Expected truncated array to fail")
	}
	if arr, ok := v.([]any); !ok || len(arr) != 1 {
		t.Errorf("Expected the elements read so far, got %v", v)
	}
}

func TestParseBulkTerminator(t *testing.T) {
	if _, err := read("$2\r\nhiXY"); !errors.Is(err, ErrBadTerminator) {
		t.Error("Expected ErrBadTerminator, got", err)
	}
	if v, err := read("$0\r\n\r\n"); err != nil || v != "" {
		t.Error("Expected empty bulk string")
	}
}
