package projects

import (
	"errors"
	"time"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrMissingFields   = errors.New("project name, desc or link empty")
)

type Project struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Desc      string    `json:"desc"`
	Image     string    `json:"image"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Project) Validate() error {
	if p.Name == "" || p.Desc == "" || p.Link == "" {
		return ErrMissingFields
	}
	return nil
}
