// Package filmdex crawls movie and series catalog sites, extracts
// quality- and episode-scoped download-link groups from release detail
// pages, and resolves indirect download links through their intermediate
// resolver pages into normalized, directly usable links.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, rod/).
package filmdex
