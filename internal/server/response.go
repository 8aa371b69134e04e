package server

// Response is what a command handler hands back to the connection
// loop: the line to write to the client, and whether the connection
// should be closed after writing it.
type Response struct {
	Msg   string
	Close bool
}

const (
	Prompt  = "> "
	respOK  = "OK"
	errNoAuth = "ERR: not authenticated"
	errNoPerm = "ERR: permission denied"
)

func Respond(msg string) Response { return Response{Msg: msg} }

func Err(msg string) Response { return Response{Msg: "ERR: " + msg} }

func Usage(usage string) Response { return Response{Msg: "ERR: usage: " + usage} }

var (
	NoAuth = Response{Msg: errNoAuth}
	NoPerm = Response{Msg: errNoPerm}
	OK     = Response{Msg: respOK}
)
