package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"skabillium/dlist/cmd/db"
	"skabillium/dlist/cmd/resp"
)

const DlistVersion = "0.1.0"

var ErrInvalidRequest = errors.New("ERR protocol error: expected an array of bulk strings")

type Server struct {
	addr   string
	db     *db.Database
	logger *zerolog.Logger
	ln     net.Listener
	ready  chan struct{}
}

func NewServer(addr string, database *db.Database, logger *zerolog.Logger) *Server {
	return &Server{addr: addr, db: database, logger: logger, ready: make(chan struct{})}
}

// Ready is closed once Start has either bound the listener or failed to.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr is the bound address, or "" when the server is not listening.
func (s *Server) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Start listens and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		close(s.ready)
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	defer ln.Close()

	s.ln = ln
	close(s.ready)
	s.logger.Info().Str("addr", ln.Addr().String()).Str("version", DlistVersion).Msg("dlist server started")

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	s.acceptLoop(ctx)
	s.logger.Info().Msg("dlist server stopped")
	return nil
}

func (s *Server) acceptLoop(ctx context.Context) {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Error().Err(err).Msg("Accept error")
			continue
		}

		go s.handleConnection(ctx, conn)
	}
}

// handleConnection serves requests on conn until the client hangs up.
// Replies are flushed once no pipelined request is left in the buffer.
func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	log := s.logger.With().Str("remote", conn.RemoteAddr().String()).Logger()
	log.Debug().Msg("Connection opened")

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("Connection handler panicked")
		}
	}()

	r := bufio.NewReader(conn)
	w := bufio.NewWriter(conn)
	for {
		req, err := resp.Read(r)
		if errors.Is(err, resp.ErrEmptyLine) {
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
				log.Warn().Err(err).Msg("Error while reading request")
				w.WriteString(resp.SerializeError(fmt.Errorf("ERR protocol error: %w", err)))
				w.Flush()
			}
			log.Debug().Msg("Connection closed")
			return
		}

		reply := s.handle(req, &log)
		out, err := resp.Serialize(reply)
		if err != nil {
			log.Error().Err(err).Msg("Could not serialize reply")
			out = resp.SerializeError(errors.New("ERR internal error"))
		}

		if _, err := w.WriteString(out); err != nil {
			log.Warn().Err(err).Msg("Error while writing reply")
			return
		}
		if r.Buffered() == 0 {
			if err := w.Flush(); err != nil {
				log.Warn().Err(err).Msg("Error while writing reply")
				return
			}
		}
	}
}

func (s *Server) handle(req any, log *zerolog.Logger) any {
	args, err := requestArgs(req)
	if err != nil {
		return err
	}

	cmd, err := ParseCommand(args)
	if err != nil {
		log.Debug().Err(err).Strs("args", args).Msg("Rejected command")
		return err
	}

	log.Debug().Str("cmd", args[0]).Msg("Executing command")
	return execute(s.db, cmd)
}

// requestArgs accepts both RESP arrays and inline command lines.
func requestArgs(req any) ([]string, error) {
	switch req := req.(type) {
	case string:
		return sanitize(req)
	case []any:
		args := make([]string, len(req))
		for i, v := range req {
			s, ok := v.(string)
			if !ok {
				return nil, ErrInvalidRequest
			}
			args[i] = s
		}
		return args, nil
	}

	return nil, ErrInvalidRequest
}

func main() {
	options, dotenv, err := getServerOptions(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(options.LogLevel, options.Pretty)
	if !dotenv {
		logger.Debug().Msg("No .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	server := NewServer(options.Addr(), db.NewDatabase(), &logger)
	if err := server.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Could not start dlist server")
	}
}
