package psqlbuilder

import "github.com/Masterminds/squirrel"

// Поддерживаемые драйверы БД
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// psql билдер с плейсхолдерами $1, $2, ... для PostgreSQL
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// For возвращает билдер запросов с плейсхолдерами, подходящими для драйвера
// Для sqlite используются "?" плейсхолдеры
func For(driver string) squirrel.StatementBuilderType {
	if driver == DriverSQLite {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
	}
	return psql
}
