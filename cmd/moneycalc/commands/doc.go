// Package commands implements the moneycalc command line: listing currencies,
// converting amounts, and serving the JSON API.
package commands
