// Package smtp provides the SMTP transport used by the sender worker.
package smtp

import "io"

// Client is the subset of *smtp.Client the sender needs.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface abstracts the SMTP transport.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
