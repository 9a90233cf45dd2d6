package outlook

import (
	"context"
	"time"
)

// AttendeeType is the role of an attendee.
type AttendeeType string

const (
	AttendeeRequired AttendeeType = "Required"
	AttendeeOptional AttendeeType = "Optional"
	AttendeeResource AttendeeType = "Resource"
)

// ResponseType is an attendee's response to a meeting.
type ResponseType string

const (
	ResponseNone                ResponseType = "None"
	ResponseOrganizer           ResponseType = "Organizer"
	ResponseTentativelyAccepted ResponseType = "TentativelyAccepted"
	ResponseAccepted            ResponseType = "Accepted"
	ResponseDeclined            ResponseType = "Declined"
	ResponseNotResponded        ResponseType = "NotResponded"
)

// EventType distinguishes single events from recurring series.
type EventType string

const (
	EventSingleInstance EventType = "SingleInstance"
	EventOccurrence     EventType = "Occurrence"
	EventException      EventType = "Exception"
	EventSeriesMaster   EventType = "SeriesMaster"
)

// FreeBusyStatus is how an event shows on the calendar.
type FreeBusyStatus string

const (
	StatusFree             FreeBusyStatus = "Free"
	StatusTentative        FreeBusyStatus = "Tentative"
	StatusBusy             FreeBusyStatus = "Busy"
	StatusOof              FreeBusyStatus = "Oof"
	StatusWorkingElsewhere FreeBusyStatus = "WorkingElsewhere"
	StatusUnknown          FreeBusyStatus = "Unknown"
)

// RecurrencePatternType is how often a series repeats.
type RecurrencePatternType string

const (
	PatternDaily           RecurrencePatternType = "Daily"
	PatternWeekly          RecurrencePatternType = "Weekly"
	PatternAbsoluteMonthly RecurrencePatternType = "AbsoluteMonthly"
	PatternRelativeMonthly RecurrencePatternType = "RelativeMonthly"
	PatternAbsoluteYearly  RecurrencePatternType = "AbsoluteYearly"
	PatternRelativeYearly  RecurrencePatternType = "RelativeYearly"
)

// RecurrenceRangeType is how a series ends.
type RecurrenceRangeType string

const (
	RangeEndDate  RecurrenceRangeType = "EndDate"
	RangeNoEnd    RecurrenceRangeType = "NoEnd"
	RangeNumbered RecurrenceRangeType = "Numbered"
)

// DayOfWeek names a weekday.
type DayOfWeek string

const (
	Sunday    DayOfWeek = "Sunday"
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
	Saturday  DayOfWeek = "Saturday"
)

// WeekIndex selects a week within a month.
type WeekIndex string

const (
	WeekFirst  WeekIndex = "First"
	WeekSecond WeekIndex = "Second"
	WeekThird  WeekIndex = "Third"
	WeekFourth WeekIndex = "Fourth"
	WeekLast   WeekIndex = "Last"
)

// ResponseStatus is an attendee's response and when it was given.
type ResponseStatus struct {
	Response ResponseType `json:"Response,omitempty"`
	Time     *time.Time   `json:"Time,omitempty"`
}

// Attendee is a meeting attendee.
type Attendee struct {
	Recipient
	Status *ResponseStatus `json:"Status,omitempty"`
	Type   AttendeeType    `json:"Type,omitempty" validate:"omitempty,oneof=Required Optional Resource"`
}

// Location is where an event takes place.
type Location struct {
	DisplayName string `json:"DisplayName,omitempty"`
}

// RecurrencePattern is the repetition rule of a series.
type RecurrencePattern struct {
	Type           RecurrencePatternType `json:"Type,omitempty"`
	Interval       int                   `json:"Interval,omitempty"`
	DayOfMonth     int                   `json:"DayOfMonth,omitempty"`
	Month          int                   `json:"Month,omitempty"`
	DaysOfWeek     []DayOfWeek           `json:"DaysOfWeek,omitempty"`
	FirstDayOfWeek DayOfWeek             `json:"FirstDayOfWeek,omitempty"`
	Index          WeekIndex             `json:"Index,omitempty"`
}

// RecurrenceRange is the time span of a series.
type RecurrenceRange struct {
	Type                RecurrenceRangeType `json:"Type,omitempty"`
	StartDate           string              `json:"StartDate,omitempty"`
	EndDate             string              `json:"EndDate,omitempty"`
	NumberOfOccurrences int                 `json:"NumberOfOccurrences,omitempty"`
}

// PatternedRecurrence combines a pattern and a range.
type PatternedRecurrence struct {
	Pattern *RecurrencePattern `json:"Pattern,omitempty"`
	Range   *RecurrenceRange   `json:"Range,omitempty"`
}

// EventProperties are the event-specific fields.
type EventProperties struct {
	Attendees         []Attendee           `json:"Attendees,omitempty"`
	Start             *time.Time           `json:"Start,omitempty"`
	End               *time.Time           `json:"End,omitempty"`
	IsAllDay          bool                 `json:"IsAllDay,omitempty"`
	IsCancelled       bool                 `json:"IsCancelled,omitempty"`
	IsOrganizer       bool                 `json:"IsOrganizer,omitempty"`
	Location          *Location            `json:"Location,omitempty"`
	Organizer         *Recipient           `json:"Organizer,omitempty"`
	Recurrence        *PatternedRecurrence `json:"Recurrence,omitempty"`
	ResponseRequested bool                 `json:"ResponseRequested,omitempty"`
	ResponseStatus    *ResponseStatus      `json:"ResponseStatus,omitempty"`
	SeriesMasterID    string               `json:"SeriesMasterId,omitempty"`
	ShowAs            FreeBusyStatus       `json:"ShowAs,omitempty"`
	Type              EventType            `json:"Type,omitempty"`
}

// EventPayload is the writable subset of an event.
type EventPayload struct {
	ItemPayload
	Attendees         []Attendee           `json:"Attendees,omitempty" validate:"omitempty,dive"`
	Start             *time.Time           `json:"Start,omitempty"`
	End               *time.Time           `json:"End,omitempty"`
	IsAllDay          bool                 `json:"IsAllDay,omitempty"`
	Location          *Location            `json:"Location,omitempty"`
	Recurrence        *PatternedRecurrence `json:"Recurrence,omitempty"`
	ResponseRequested bool                 `json:"ResponseRequested,omitempty"`
	ShowAs            FreeBusyStatus       `json:"ShowAs,omitempty"`
}

// EventFetcher is a handle to one event.
type EventFetcher struct {
	Fetcher[*Event]
}

func newEventFetcher(c *Context, p Path, err error, id string) *EventFetcher {
	return &EventFetcher{Fetcher: newFetcher(c, p, err, id, "getEvent", hydrateEvent)}
}

// Calendar returns the calendar the event belongs to.
func (f *EventFetcher) Calendar() *CalendarFetcher {
	return navigate(&f.Entity, "Calendar", func(c *Context, p Path, err error) *CalendarFetcher {
		return newCalendarFetcher(c, p, err, "")
	})
}

// Attachments returns the event attachments.
func (f *EventFetcher) Attachments() *Attachments {
	return navigate(&f.Entity, "Attachments", newAttachments)
}

// Delete deletes the event.
func (f *EventFetcher) Delete(ctx context.Context) error {
	return executeVoid(ctx, &f.Entity, "deleteEvent")
}

// Accept accepts the meeting with a comment.
func (f *EventFetcher) Accept(ctx context.Context, comment string) error {
	return executeVoid(ctx, &f.Entity, "accept", comment)
}

// Decline declines the meeting with a comment.
func (f *EventFetcher) Decline(ctx context.Context, comment string) error {
	return executeVoid(ctx, &f.Entity, "decline", comment)
}

// TentativelyAccept tentatively accepts the meeting with a comment.
func (f *EventFetcher) TentativelyAccept(ctx context.Context, comment string) error {
	return executeVoid(ctx, &f.Entity, "tentativelyAccept", comment)
}

// Event is a hydrated calendar event.
type Event struct {
	EventFetcher
	ItemProperties
	EventProperties
}

func hydrateEvent(c *Context, p Path, raw []byte) (*Event, error) {
	return hydrateJSON[Event](c, p, raw)
}

func (e *Event) bind(c *Context, p Path) {
	e.EventFetcher = *newEventFetcher(c, p, nil, e.ID)
}

// Payload returns the writable fields.
func (e *Event) Payload() EventPayload {
	return EventPayload{
		ItemPayload:       e.ItemPayload(),
		Attendees:         e.Attendees,
		Start:             e.Start,
		End:               e.End,
		IsAllDay:          e.IsAllDay,
		Location:          e.Location,
		Recurrence:        e.Recurrence,
		ResponseRequested: e.ResponseRequested,
		ShowAs:            e.ShowAs,
	}
}

// Update saves the writable fields and returns the updated event.
func (e *Event) Update(ctx context.Context) (*Event, error) {
	body, err := encodePayload(e.Payload())
	if err != nil {
		return nil, err
	}
	return execute(ctx, &e.Entity, "updateEvent", hydrateEvent, atSelf, body)
}

// Events is a collection of events.
type Events struct {
	Entity
}

func newEvents(c *Context, p Path, err error) *Events {
	return &Events{Entity: newEntity(c, p, err)}
}

// GetEvent returns a handle to one event by id.
func (e *Events) GetEvent(id string) *EventFetcher {
	return &EventFetcher{Fetcher: itemFetcher(&e.Entity, id, "getEvent", hydrateEvent)}
}

// GetEvents returns a fresh query over the collection.
func (e *Events) GetEvents() *CollectionFetcher[*Event] {
	return newCollectionFetcher(&e.Entity, "getEvents", hydrateEvent)
}

// AddEvent creates an event in the collection.
func (e *Events) AddEvent(ctx context.Context, item EventPayload) (*Event, error) {
	body, err := encodePayload(item)
	if err != nil {
		return nil, err
	}
	return execute(ctx, &e.Entity, "addEvent", hydrateEvent, atChild, body)
}
