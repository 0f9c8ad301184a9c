// Package tracker sequences one synchronization run: resolve the vessel's
// checkpoint, fetch the route feed since that time, extract position records
// and mail a report for the newest one.
package tracker
