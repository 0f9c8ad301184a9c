// Package mapshare fetches a vessel's route-history KML feed and extracts
// the position records it contains.
package mapshare
