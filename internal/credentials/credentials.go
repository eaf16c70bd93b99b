// Package credentials obtains the upstream session cookie.
package credentials

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/http/httpguts"
	"golang.org/x/term"
)

// EnvCookie names the environment variable holding the session cookie.
const EnvCookie = "COOKIE"

const promptText = "Cookie plz: "

var (
	ErrMissingCookie = errors.New("credentials: no cookie supplied")
	ErrInvalidCookie = errors.New("credentials: cookie is not a valid header value")
)

type fdReader interface {
	io.Reader
	Fd() uintptr
}

// Resolver looks up the cookie in the environment and falls back to asking
// for it on Stdin. Terminal input is read without echo.
type Resolver struct {
	Getenv func(string) string
	Stdin  io.Reader
	Prompt io.Writer

	isTerminal   func(fd int) bool
	readPassword func(fd int) ([]byte, error)
}

// NewResolver returns a Resolver bound to the process environment and stdio.
func NewResolver() *Resolver {
	return &Resolver{
		Getenv:       os.Getenv,
		Stdin:        os.Stdin,
		Prompt:       os.Stderr,
		isTerminal:   term.IsTerminal,
		readPassword: term.ReadPassword,
	}
}

// Resolve is shorthand for NewResolver().Resolve().
func Resolve() (string, error) {
	return NewResolver().Resolve()
}

// Resolve returns a validated cookie.
func (r *Resolver) Resolve() (string, error) {
	if r.Getenv != nil {
		if v := strings.TrimSpace(r.Getenv(EnvCookie)); v != "" {
			return v, Validate(v)
		}
	}

	v, err := r.ask()
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", ErrMissingCookie
	}
	return v, Validate(v)
}

func (r *Resolver) ask() (string, error) {
	if r.Stdin == nil {
		return "", ErrMissingCookie
	}
	if r.Prompt != nil {
		fmt.Fprint(r.Prompt, promptText)
	}

	if f, ok := r.Stdin.(fdReader); ok && r.isTerminal != nil && r.readPassword != nil && r.isTerminal(int(f.Fd())) {
		raw, err := r.readPassword(int(f.Fd()))
		if r.Prompt != nil {
			fmt.Fprintln(r.Prompt)
		}
		if err != nil {
			return "", fmt.Errorf("credentials: read cookie: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	line, err := bufio.NewReader(r.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("credentials: read cookie: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Validate checks that v can be sent as an HTTP header value. The cookie
// itself is opaque.
func Validate(v string) error {
	if v == "" {
		return ErrMissingCookie
	}
	if !httpguts.ValidHeaderFieldValue(v) {
		return ErrInvalidCookie
	}
	return nil
}
