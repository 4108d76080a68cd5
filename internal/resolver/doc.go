// Package resolver decides, per job, which download backend to use and
// how high the quality ceiling may go. The decision table is a pure
// function; the surrounding Resolver only adds the optional format
// probe and diagnostics.
package resolver
