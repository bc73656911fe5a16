// Package kernel contains the value objects shared by every aggregate of the
// marketplace: identifiers (UUID), geographic points with great-circle
// distance (Location) and non-negative amounts in minor units (Money).
//
// Values are immutable and must be obtained from their constructors; the zero
// value of each type fails Validate.
package kernel
