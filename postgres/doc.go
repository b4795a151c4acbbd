/*
Package postgres connects to PostgreSQL through GORM and runs enum-aware queries against it.

[Compile] translates a [filter.Filter] into a GORM clause.Expression:
In becomes IN, IsNull becomes IS NULL, and Contains becomes code = ANY(column),
PostgreSQL's membership test over an integer[] column.

[DB] wraps a *gorm.DB with a chainable query builder whose Where, Or and Not
accept a [filter.Filter] wherever they accept a query fragment,
and whose finisher methods return the errors declared by package enums.

Connecting to a test database drops and recreates the public schema;
see [NewConfig] for the environment variables consulted.
*/
package postgres
