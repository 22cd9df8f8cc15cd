// Package event provides a synchronous pub-sub bus for dashboard
// notifications.
//
// The auto-scroll engine publishes panel transitions and the dashboard
// publishes spreadsheet loads; the trace command, the debug log and tests
// subscribe without the publishers knowing about them.
//
// # Event Types
//
// Event types follow the pattern "category.action":
//   - panel.state: [PanelStateEvent], a scroller state change
//   - panel.speed: [PanelSpeedEvent], a speed cycle
//   - sheet.loaded: [SheetLoadedEvent]
//   - sheet.failed: [SheetFailedEvent]
//
// # Thread Safety
//
// [Bus] is safe for concurrent use. Handlers run synchronously on the
// publishing goroutine, so handlers of engine events run on the engine's
// event loop and must not block.
//
// # Basic Usage
//
//	bus := event.NewBus(logger)
//	bus.Subscribe(event.TypePanelState, func(e event.Event) {
//	    ev := e.(event.PanelStateEvent)
//	    fmt.Printf("panel %d: %s -> %s\n", ev.Panel, ev.From, ev.To)
//	})
package event
