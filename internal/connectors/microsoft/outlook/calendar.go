package outlook

import "context"

// CalendarProperties are the fields of a calendar.
type CalendarProperties struct {
	ID        string `json:"Id,omitempty"`
	Name      string `json:"Name,omitempty"`
	ChangeKey string `json:"ChangeKey,omitempty"`
	Color     string `json:"Color,omitempty"`
}

// CalendarPayload is the writable subset of a calendar.
type CalendarPayload struct {
	Name  string `json:"Name" validate:"required"`
	Color string `json:"Color,omitempty"`
}

// CalendarFetcher is a handle to one calendar.
type CalendarFetcher struct {
	Fetcher[*Calendar]
}

func newCalendarFetcher(c *Context, p Path, err error, id string) *CalendarFetcher {
	return &CalendarFetcher{Fetcher: newFetcher(c, p, err, id, "getCalendar", hydrateCalendar)}
}

// Events returns the events of this calendar.
func (f *CalendarFetcher) Events() *Events {
	return navigate(&f.Entity, "Events", newEvents)
}

// Delete deletes the calendar.
func (f *CalendarFetcher) Delete(ctx context.Context) error {
	return executeVoid(ctx, &f.Entity, "deleteCalendar")
}

// Calendar is a hydrated calendar.
type Calendar struct {
	CalendarFetcher
	CalendarProperties
}

func hydrateCalendar(c *Context, p Path, raw []byte) (*Calendar, error) {
	return hydrateJSON[Calendar](c, p, raw)
}

func (cal *Calendar) bind(c *Context, p Path) {
	cal.CalendarFetcher = *newCalendarFetcher(c, p, nil, cal.ID)
}

// Payload returns the writable fields.
func (cal *Calendar) Payload() CalendarPayload {
	return CalendarPayload{Name: cal.Name, Color: cal.Color}
}

// Update saves the writable fields and returns the updated calendar.
func (cal *Calendar) Update(ctx context.Context) (*Calendar, error) {
	body, err := encodePayload(cal.Payload())
	if err != nil {
		return nil, err
	}
	return execute(ctx, &cal.Entity, "updateCalendar", hydrateCalendar, atSelf, body)
}

// Calendars is a collection of calendars.
type Calendars struct {
	Entity
}

func newCalendars(c *Context, p Path, err error) *Calendars {
	return &Calendars{Entity: newEntity(c, p, err)}
}

// GetCalendar returns a handle to one calendar by id.
func (cs *Calendars) GetCalendar(id string) *CalendarFetcher {
	return &CalendarFetcher{Fetcher: itemFetcher(&cs.Entity, id, "getCalendar", hydrateCalendar)}
}

// GetCalendars returns a fresh query over the collection.
func (cs *Calendars) GetCalendars() *CollectionFetcher[*Calendar] {
	return newCollectionFetcher(&cs.Entity, "getCalendars", hydrateCalendar)
}

// AddCalendar creates a calendar in the collection.
func (cs *Calendars) AddCalendar(ctx context.Context, item CalendarPayload) (*Calendar, error) {
	body, err := encodePayload(item)
	if err != nil {
		return nil, err
	}
	return execute(ctx, &cs.Entity, "addCalendar", hydrateCalendar, atChild, body)
}
