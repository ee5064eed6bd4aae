// Package harvest extracts structured records (products, business
// listings, articles) from heterogeneous HTML documents whose markup is
// unknown in advance. It locates repeating record containers on a page,
// pulls named fields out of each container through a cascade of explicit
// selectors and generic heuristics, normalizes and validates the extracted
// values, and follows "next page" links across paginated sites.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, yaml/).
package harvest
