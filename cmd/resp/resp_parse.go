package resp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Resp protocol's data types
const (
	RespStatus = '+' // +<string>\r\n
	RespError  = '-' // -<string>\r\n
	RespString = '$' // $<length>\r\n<bytes>\r\n
	RespInt    = ':' // :<number>\r\n
	RespArray  = '*' // *<len>\r\n...
)

// Upper bounds on lengths announced by the peer, matching Redis'
// proto-max-bulk-len and multibulk limits.
const (
	MaxBulkLen  = 512 * 1024 * 1024
	MaxArrayLen = 1024 * 1024
)

var ErrEmptyLine = errors.New("resp: empty line")
var ErrBadTerminator = errors.New("resp: bulk string not terminated by CRLF")

// Read decodes the next value from r. Bulk strings come back as string,
// nil bulk strings and arrays as nil, integers as int and arrays as []any.
// An error reply is returned as an error value, not as err.
func Read(r *bufio.Reader) (any, error) {
	l, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}

	line := strings.TrimRight(l, "\r\n")
	if len(line) == 0 {
		return nil, ErrEmptyLine
	}

	switch line[0] {
	case RespInt:
		return strconv.Atoi(line[1:])
	case RespStatus:
		return line[1:], nil
	case RespString:
		return readString(r, line)
	case RespError:
		return errors.New(line[1:]), nil
	case RespArray:
		return readSlice(r, line)
	}

	// Inline command, handed back untouched
	return line, nil
}

func readString(r *bufio.Reader, line string) (any, error) {
	n, err := replyLen(line, MaxBulkLen)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, nil
	}

	// Grows with the bytes actually received, not with the announced length
	var sb strings.Builder
	if _, err := io.CopyN(&sb, r, int64(n)+2); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	b := sb.String()
	if b[n:] != "\r\n" {
		return nil, ErrBadTerminator
	}

	return b[:n], nil
}

func readSlice(r *bufio.Reader, line string) (any, error) {
	n, err := replyLen(line, MaxArrayLen)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, nil
	}

	arr := []any{}
	for i := 0; i < n; i++ {
		v, err := Read(r)
		if err != nil {
			return arr, err
		}

		arr = append(arr, v)
	}

	return arr, nil
}

func replyLen(line string, limit int) (int, error) {
	n, err := strconv.Atoi(line[1:])
	if err != nil {
		return 0, fmt.Errorf("resp: invalid length %q: %w", line[1:], err)
	}
	if n > limit {
		return 0, fmt.Errorf("resp: length %d exceeds limit %d", n, limit)
	}
	if n < -1 {
		return 0, fmt.Errorf("resp: invalid length %d", n)
	}

	return n, nil
}
