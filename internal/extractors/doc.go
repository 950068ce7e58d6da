// Package extractors turns uploaded files into plain text.
//
// Each sub-package handles one format family and implements driven.Extractor.
// The Registry dispatches a file to its extractor by declared extension,
// falling back to the MIME hint supplied by the caller. File contents are
// never sniffed.
package extractors
