// Package report turns an extracted position record into the plain-text
// email notification: unit conversion, field formatting, addressing.
package report
