// Package notifier delivers formatted position reports by email.
package notifier
