package email

import (
	"errors"
	"net/smtp"
)

// loginAuth implements the LOGIN mechanism, which net/smtp lacks and some
// relays (Office 365) require instead of PLAIN.
type loginAuth struct {
	username, password string
}

func (a *loginAuth) Start(server *smtp.ServerInfo) (string, []byte, error) {
	return "LOGIN", []byte{}, nil
}

func (a *loginAuth) Next(fromServer []byte, more bool) ([]byte, error) {
	if !more {
		return nil, nil
	}

	switch string(fromServer) {
	case "Username:":
		return []byte(a.username), nil
	case "Password:":
		return []byte(a.password), nil
	default:
		return nil, errors.New("unknown LOGIN challenge: " + string(fromServer))
	}
}
