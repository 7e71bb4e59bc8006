package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"skabillium/dlist/cmd/db"
	"skabillium/dlist/cmd/resp"
)

func ErrUnknownCmd(cmd string) error {
	return fmt.Errorf("ERR unknown command '%s'", cmd)
}

func ErrInvalidNArg(cmd string) error {
	return fmt.Errorf("ERR wrong number of arguments for '%s' command", cmd)
}

var ErrNotInt = errors.New("ERR value is not an integer or out of range")
var ErrUnbalancedQuotes = errors.New("ERR unbalanced quotes")
var ErrEmptyCommand = errors.New("ERR empty command")

type CommandType = byte

const (
	// Server commands
	CmdVersion CommandType = iota
	CmdPing
	CmdKeys
	CmdDbSize
	CmdFlushAll
	CmdDel
	// Lists
	CmdRPush
	CmdLIndex
	CmdLLen
	CmdLRange
	CmdLReverse
	CmdLRender
)

type Command struct {
	Kind   CommandType
	Key    string
	Keys   []string
	Values []string

	Pattern string // keys
	Index   int    // lindex
	Start   int    // lrange
	Stop    int    // lrange
}

// argc is the number of arguments including the command name. A negative
// value means "at least -argc".
var arity = map[string]int{
	"version":  1,
	"ping":     1,
	"keys":     -1,
	"dbsize":   1,
	"flushall": 1,
	"del":      -2,
	"rpush":    -3,
	"lindex":   3,
	"llen":     2,
	"lrange":   4,
	"lreverse": 2,
	"lrender":  2,
}

func ParseCommand(args []string) (*Command, error) {
	argc := len(args)
	if argc == 0 {
		return nil, ErrEmptyCommand
	}

	cmd := strings.ToLower(args[0])
	n, known := arity[cmd]
	if !known {
		return nil, ErrUnknownCmd(cmd)
	}
	if (n > 0 && argc != n) || (n < 0 && argc < -n) {
		return nil, ErrInvalidNArg(cmd)
	}

	switch cmd {
	case "version":
		return &Command{Kind: CmdVersion}, nil
	case "ping":
		return &Command{Kind: CmdPing}, nil
	case "keys":
		if argc > 2 {
			return nil, ErrInvalidNArg(cmd)
		}

		keys := &Command{Kind: CmdKeys, Pattern: "*"}
		if argc == 2 {
			keys.Pattern = args[1]
		}
		return keys, nil
	case "dbsize":
		return &Command{Kind: CmdDbSize}, nil
	case "flushall":
		return &Command{Kind: CmdFlushAll}, nil
	case "del":
		return &Command{Kind: CmdDel, Keys: args[1:]}, nil
	case "rpush":
		return &Command{Kind: CmdRPush, Key: args[1], Values: args[2:]}, nil
	case "lindex":
		index, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, ErrNotInt
		}
		return &Command{Kind: CmdLIndex, Key: args[1], Index: index}, nil
	case "llen":
		return &Command{Kind: CmdLLen, Key: args[1]}, nil
	case "lrange":
		start, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, ErrNotInt
		}
		stop, err := strconv.Atoi(args[3])
		if err != nil {
			return nil, ErrNotInt
		}
		return &Command{Kind: CmdLRange, Key: args[1], Start: start, Stop: stop}, nil
	case "lreverse":
		return &Command{Kind: CmdLReverse, Key: args[1]}, nil
	case "lrender":
		return &Command{Kind: CmdLRender, Key: args[1]}, nil
	}

	return nil, ErrUnknownCmd(cmd)
}

// execute runs cmd against the keyspace and returns the value to send back.
func execute(d *db.Database, cmd *Command) any {
	switch cmd.Kind {
	case CmdVersion:
		return "dlist server version " + DlistVersion
	case CmdPing:
		return resp.SimpleString("PONG")
	case CmdKeys:
		return d.Keys(cmd.Pattern)
	case CmdDbSize:
		return d.DbSize()
	case CmdFlushAll:
		d.FlushAll()
		return resp.OK
	case CmdDel:
		return d.Del(cmd.Keys...)
	case CmdRPush:
		return d.RPush(cmd.Key, cmd.Values...)
	case CmdLIndex:
		value, found := d.LIndex(cmd.Key, cmd.Index)
		if !found {
			return nil
		}
		return value
	case CmdLLen:
		return d.LLen(cmd.Key)
	case CmdLRange:
		return d.LRange(cmd.Key, cmd.Start, cmd.Stop)
	case CmdLReverse:
		if !d.LReverse(cmd.Key) {
			return nil
		}
		return resp.OK
	case CmdLRender:
		value, found := d.Render(cmd.Key)
		if !found {
			return nil
		}
		return value
	}

	return fmt.Errorf("ERR command %d not implemented", cmd.Kind)
}

// sanitize splits an inline command line on whitespace. Single or double
// quotes group words into one argument.
func sanitize(message string) ([]string, error) {
	out := []string{}
	i := 0

	for i < len(message) {
		c := message[i]
		if isWhitespace(c) {
			i++
			continue
		}

		if c == '"' || c == '\'' {
			end := strings.IndexByte(message[i+1:], c)
			if end < 0 {
				return nil, ErrUnbalancedQuotes
			}

			out = append(out, message[i+1:i+1+end])
			i += end + 2
			continue
		}

		start := i
		for i < len(message) && !isWhitespace(message[i]) {
			i++
		}
		out = append(out, message[start:i])
	}

	return out, nil
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
