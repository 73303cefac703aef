// Package mock provides function-field mock implementations of the
// filmdex service interfaces for use in tests.
package mock
