package repository

import (
	"fmt"
	"strings"
)

// setClause collects "column = $n" fragments for a partial UPDATE.
type setClause struct {
	sets []string
	args []any
}

func (s *setClause) add(column string, value any) {
	s.args = append(s.args, value)
	s.sets = append(s.sets, fmt.Sprintf("%s = $%d", column, len(s.args)))
}

func (s *setClause) empty() bool {
	return len(s.sets) == 0
}

// build appends the id argument and returns the SET list and the id placeholder.
func (s *setClause) build(id int) (string, string) {
	s.args = append(s.args, id)
	return strings.Join(s.sets, ", "), fmt.Sprintf("$%d", len(s.args))
}
