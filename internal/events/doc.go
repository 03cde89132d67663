// Package events provides types and interfaces for batch lifecycle events.
//
// This package defines event types and handler interfaces that allow for loose
// coupling between components in the system. The pipeline can emit lifecycle
// transitions without knowing which handlers will process them.
//
// The primary components are:
// - BatchEvent: Represents one lifecycle transition of a batch
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
