package records

import (
	"database/sql"
	"sort"

	"github.com/registrar-tools/tally/pkg/query"
	"github.com/registrar-tools/tally/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "records", "r").
	Project("id", "ID").
	Project("code_prefix", "CodePrefix").
	Project("code_number", "CodeNumber").
	Project("code_suffix", "CodeSuffix").
	Project("summary", "Summary").
	Project("location", "Location")

var idProjection = query.
	NewProjectionMap("public", "records", "r").
	Project("id", "ID").
	Map("collection", "Collection")

func scanDetail(s repository.Scanner) (Detail, error) {
	var (
		d        Detail
		suffix   sql.NullString
		location sql.NullString
	)

	if err := s.Scan(&d.ID, &d.CodePrefix, &d.CodeNumber, &suffix, &d.Summary, &location); err != nil {
		return Detail{}, err
	}

	d.CodeSuffix = suffix.String
	if location.Valid && location.String != "" {
		d.Location = location.String
	} else {
		d.Location = LocationNotRecorded
	}

	return d, nil
}

func scanName(s repository.Scanner) (string, error) {
	var name string
	if err := s.Scan(&name); err != nil {
		return "", err
	}
	return name, nil
}

func scanID(s repository.Scanner) (int64, error) {
	var id int64
	if err := s.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// SortDetails orders details by the natural code key: prefix, number,
// suffix ascending. Batch results arrive unordered, so presentation order
// is restored here rather than relied on from the query engine.
func SortDetails(details []Detail) {
	sort.Slice(details, func(i, j int) bool {
		a, b := details[i], details[j]
		if a.CodePrefix != b.CodePrefix {
			return a.CodePrefix < b.CodePrefix
		}
		if a.CodeNumber != b.CodeNumber {
			return a.CodeNumber < b.CodeNumber
		}
		return a.CodeSuffix < b.CodeSuffix
	})
}
