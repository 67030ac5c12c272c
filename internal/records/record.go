// Package records implements the record domain: collection lookup,
// population queries for category predicates, and bulk detail retrieval
// for selected identifiers.
package records

import "fmt"

// LocationNotRecorded is the sentinel rendered for records whose location
// could not be resolved. Detail rows never carry a blank location.
const LocationNotRecorded = "(not recorded)"

// Detail is the display detail for one selected record. It is produced
// once per identifier regardless of how many categories drew the record.
type Detail struct {
	ID         int64
	CodePrefix string
	CodeNumber int
	CodeSuffix string
	Summary    string
	Location   string
}

// DisplayCode returns the record's registration code: prefix, number, and
// optional suffix concatenated.
func (d Detail) DisplayCode() string {
	return fmt.Sprintf("%s%d%s", d.CodePrefix, d.CodeNumber, d.CodeSuffix)
}
