package domain

// ImportWarning is a non-fatal, user-visible problem with one input file.
type ImportWarning struct {
	// File is the declared name of the affected file.
	File string `json:"file"`

	// Reason describes what went wrong.
	Reason string `json:"reason"`
}

// ImportReport is the outcome of one batch import.
type ImportReport struct {
	// Added lists the sources created, in input order.
	Added []Source

	// Warnings lists skipped files and empty extractions.
	Warnings []ImportWarning
}

// AddedCount returns the number of sources created.
func (r *ImportReport) AddedCount() int {
	return len(r.Added)
}

// Warn records a warning for a file.
func (r *ImportReport) Warn(file, reason string) {
	r.Warnings = append(r.Warnings, ImportWarning{File: file, Reason: reason})
}
