package repository

import "database/sql"

// NewSQLStore wires every repository to one sqlite handle.
func NewSQLStore(db *sql.DB) Store {
	return Store{
		Items:       NewItemRepo(db),
		Projects:    NewProjectRepo(db),
		Assignments: NewAssignmentRepo(db),
		Users:       NewUserRepo(db),
		Codes:       NewCodeRepo(db),
	}
}
