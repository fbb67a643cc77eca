// Package syncutil provides synchronization utilities.
package syncutil
