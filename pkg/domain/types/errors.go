package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrNoQualifyingLabel is the domain-level check failure: none of the
	// labels on the pull request belong to the allowed set.
	ErrNoQualifyingLabel = goerr.New("None of the required labels are applied to the PR.")

	// ErrRecordExists is returned by CheckRepository.Create when the record
	// ID has already been written.
	ErrRecordExists = goerr.New("check record already exists")

	// ErrRecordNotFound is returned by CheckRepository.Get for unknown IDs.
	ErrRecordNotFound = goerr.New("check record not found")
)
