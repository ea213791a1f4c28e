// Package domain contains the cruise entities: passengers and the cabin
// variants they can be assigned to. Types here know how to build themselves
// from a raw record but are otherwise free of I/O so they can be shared by the
// registry, the CLI and the HTTP surface.
package domain
