/*
Package validate checks structs against "validate" struct tags,
extending go-playground/validator with rules for enum columns:

	enum           the field is an enums.Enumerable, or a non-empty slice of them, and Valid
	code=<name>    the integer field, or every element of an integer slice field,
	               is a code of the Definition registered as <name>
	label=<name>   the string field, or every element of a string slice field,
	               is a label of the Definition registered as <name>

For example:

	type Ticket struct {
		Status   int           `db:"status" validate:"code=ticket_status"`
		Channels pq.Int64Array `db:"enabled_types" validate:"code=notification_type"`
	}

Failures return as ValidationErrors, which unwrap to enums.ErrNotValid.
*/
package validate
