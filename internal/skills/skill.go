package skills

import "errors"

var (
	ErrSkillNotFound  = errors.New("skill not found")
	ErrSkillExists    = errors.New("skill already exists")
	ErrSkillNameEmpty = errors.New("skill name empty")
)

type Skill struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
