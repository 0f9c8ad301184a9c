// Package marinetraffic resolves the checkpoint for a tracked vessel: the
// timestamp of the last position report visible on the vessel's public AIS
// detail page.
package marinetraffic
