// Package goquery implements filmdex's HTML extraction on top of
// PuerkitoBio/goquery: detail-page layout detection, episode- and
// quality-layout link extraction, resolver-page parsing, release
// metadata extraction, and listing-page link discovery.
package goquery
