// Package memory provides in-memory configuration and prompt stores.
package memory
