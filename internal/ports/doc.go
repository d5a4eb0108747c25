// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters and to the host page.
//
// In Clean Architecture / Hexagonal Architecture, ports are the boundaries
// between the application core and the outside world. They define what the
// application needs from external systems without specifying how those needs
// are fulfilled.
//
// # Port Interfaces
//
//   - [Platform]: Host-specific strategy for locating and driving uploads
//   - [Document] / [Node]: Narrow view of the host page's DOM
//   - [Presenter]: Toast/progress/rename-prompt surface
//   - [Telemetry]: Fire-and-forget usage event sink
//   - [SettingsSource]: Settings snapshots plus a change-notification stream
//   - [Logger]: Structured logging abstraction
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) and platform strategies
// (internal/platforms) implement them with concrete behavior.
//
// This separation enables:
//   - Testing orchestration logic with fake documents and platforms
//   - Swapping the presentation or telemetry layer without touching the core
//   - Clear boundaries and dependency direction
package ports
