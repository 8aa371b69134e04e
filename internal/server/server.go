package server

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"bptree/internal/auth"
	"bptree/internal/config"
	"bptree/internal/engine"
	"bptree/internal/logger"
)

// Server is a line-oriented TCP server fronting one shared
// engine.Database. Unlike the teacher, which multiplexes many on-disk
// databases behind OPEN/CREATE/DELETE, this port has exactly one
// in-memory tree per process, so AUTH gates access to that single
// database by role instead of by per-database grants.
type Server struct {
	cfg      *config.Config
	log      *logger.Logger
	auth     *auth.Authenticator
	db       *engine.Database
	ln       net.Listener
	shutdown chan struct{}
}

func New(cfg *config.Config, log *logger.Logger, db *engine.Database, store auth.Store) *Server {
	return &Server{
		cfg:      cfg,
		log:      log,
		auth:     auth.NewAuthenticator(store),
		db:       db,
		shutdown: make(chan struct{}),
	}
}

func (s *Server) Listen() error {
	l, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: start listener: %w", err)
	}
	s.ln = l
	s.log.Infof("listening on %s", s.cfg.Addr)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		<-sigCh
		s.log.Infof("shutting down")
		close(s.shutdown)
		s.ln.Close()
	}()

	for {
		conn, err := l.Accept()
		if err != nil {
			select {
			case <-s.shutdown:
				return nil
			default:
				s.log.Warnf("accept: %v", err)
				continue
			}
		}
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	sess := &Session{}
	scanner := bufio.NewScanner(conn)

	conn.Write([]byte(Prompt))
	for scanner.Scan() {
		select {
		case <-s.shutdown:
			conn.Write([]byte("\nserver shutting down\n"))
			return
		default:
		}

		resp := s.exec(sess, scanner.Text())
		conn.Write([]byte(resp.Msg + "\n"))
		if resp.Close {
			return
		}
		conn.Write([]byte(Prompt))
	}
}

func (s *Server) exec(sess *Session, line string) Response {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Respond("")
	}

	switch strings.ToUpper(parts[0]) {
	case "AUTH":
		return s.authCommand(sess, parts)
	case "SET":
		return s.setCommand(sess, parts)
	case "GET":
		return s.getCommand(sess, parts)
	case "DEL":
		return s.delCommand(sess, parts)
	case "CREATEUSER":
		return s.createUserCommand(sess, parts)
	case "DELUSER":
		return s.delUserCommand(sess, parts)
	case "LISTUSERS":
		return s.listUsersCommand(sess, parts)
	case "CLOSE", "EXIT":
		return Response{Msg: "bye", Close: true}
	default:
		return Err("unknown command " + parts[0])
	}
}
