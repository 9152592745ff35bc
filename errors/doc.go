/*
Package errors implements custom error interfaces for the marketplace
ledger.

The idea is to reuse as many errors from this package as possible and
define custom package errors when absolutely necessary. Errors are
categorized by a root error that carries a unique numeric code. Create
errors during runtime by wrapping a root error, never by declaring new
root instances outside of a package initialization:

  errors.Wrap(errors.ErrState, "item already sold")

Use the Is method of a root error to test any error for its category,
regardless of how many times it was wrapped on the way up:

  if errors.ErrUnauthorized.Is(err) { ... }
*/
package errors
