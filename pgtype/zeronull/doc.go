// Package zeronull contains types that convert between SQL NULL and Go zero values.
/*
Sometimes the distinction between a zero value and NULL is not useful to an application. For example, an empty
middle name may be stored as NULL. The types in this package scan NULL as the zero value and render the zero value as
NULL. They implement pgtype.TextDecoder and pgtype.TextEncoder, so a pgtype.Map treats them as types with a
representation of NULL.

	middleName, err := pgfield.As[zeronull.Text](row.Field(1)) // "" if the field is NULL

Converting at the point of use is usually clearer than declaring variables of these types.

	name := string(middleName)
*/
package zeronull
