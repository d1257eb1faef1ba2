// Package tagscan extracts the content of caller-selected tags from
// arbitrary, possibly malformed markup in a single linear pass. It never
// builds a DOM and never rejects input: mismatched, overlapping or missing
// closing tags become MALFORMED records and diagnostics while the scan
// carries on.
//
// This package contains the scanner core plus the domain types and
// interfaces shared by the rest of the module, following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, etree/).
package tagscan
