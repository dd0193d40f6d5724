// Package marketscan extracts structured listing records from marketplace
// group feeds. Posts and comments captured from a feed page are turned into
// priced listings, classified as seller or buyer and as sublet or not, and
// filtered down to the ones worth reading.
//
// This package contains domain types, interfaces and the pure extraction
// engine following Ben Johnson's Standard Package Layout. Implementations
// of collaborators live in subdirectories named after their primary
// dependency (e.g., goquery/, rod/, fs/).
package marketscan
