package database

func NewForDialect(dialect string) *DB {
	return &DB{dialect: dialect}
}
