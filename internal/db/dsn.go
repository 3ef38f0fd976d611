package db

import (
	"net"
	"net/url"
)

type ConnParams struct {
	Host     string
	Port     string
	DBName   string
	User     string
	Password string
	// SSLMode defaults to disable, the database is only reachable on the
	// internal network
	SSLMode string
}

// DSN renders the params as a postgres URL, usable by both pgx and golang-migrate.
func (p ConnParams) DSN() string {
	user := p.User
	if user == "" {
		user = "postgres"
	}
	sslMode := p.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(p.Host, p.Port),
		Path:     "/" + p.DBName,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}
	if p.Password != "" {
		u.User = url.UserPassword(user, p.Password)
	} else {
		u.User = url.User(user)
	}
	return u.String()
}
