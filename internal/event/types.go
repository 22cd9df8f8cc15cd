package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "panel.state", "sheet.loaded")
	EventType() string

	// Timestamp returns when the event occurred, on the publisher's clock.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string, at time.Time) baseEvent {
	return baseEvent{eventType: eventType, timestamp: at}
}

// Event types.
const (
	TypePanelState  = "panel.state"
	TypePanelSpeed  = "panel.speed"
	TypeSheetLoaded = "sheet.loaded"
	TypeSheetFailed = "sheet.failed"
)

// -----------------------------------------------------------------------------
// Panel Events
// -----------------------------------------------------------------------------

// PanelStateEvent is emitted when a panel's scroller state changes, e.g. from
// scrolling-forward to paused-at-bottom.
type PanelStateEvent struct {
	baseEvent
	Panel  int    // 1-based panel number
	From   string // Previous state name
	To     string // New state name
	Offset int    // Scroll offset in pixels when the change happened
}

// NewPanelStateEvent creates a PanelStateEvent.
func NewPanelStateEvent(at time.Time, panel int, from, to string, offset int) PanelStateEvent {
	return PanelStateEvent{
		baseEvent: newBaseEvent(TypePanelState, at),
		Panel:     panel,
		From:      from,
		To:        to,
		Offset:    offset,
	}
}

// PanelSpeedEvent is emitted when a panel's speed is cycled.
type PanelSpeedEvent struct {
	baseEvent
	Panel int    // 1-based panel number
	Speed string // New speed label, e.g. "1.5x"
}

// NewPanelSpeedEvent creates a PanelSpeedEvent.
func NewPanelSpeedEvent(at time.Time, panel int, speed string) PanelSpeedEvent {
	return PanelSpeedEvent{
		baseEvent: newBaseEvent(TypePanelSpeed, at),
		Panel:     panel,
		Speed:     speed,
	}
}

// -----------------------------------------------------------------------------
// Spreadsheet Events
// -----------------------------------------------------------------------------

// SheetLoadedEvent is emitted after the spreadsheet was read and summarised.
type SheetLoadedEvent struct {
	baseEvent
	Path    string
	Records int
}

// NewSheetLoadedEvent creates a SheetLoadedEvent.
func NewSheetLoadedEvent(at time.Time, path string, records int) SheetLoadedEvent {
	return SheetLoadedEvent{
		baseEvent: newBaseEvent(TypeSheetLoaded, at),
		Path:      path,
		Records:   records,
	}
}

// SheetFailedEvent is emitted when reading the spreadsheet fails.
type SheetFailedEvent struct {
	baseEvent
	Path string
	Err  error
}

// NewSheetFailedEvent creates a SheetFailedEvent.
func NewSheetFailedEvent(at time.Time, path string, err error) SheetFailedEvent {
	return SheetFailedEvent{
		baseEvent: newBaseEvent(TypeSheetFailed, at),
		Path:      path,
		Err:       err,
	}
}
