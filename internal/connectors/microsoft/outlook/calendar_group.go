package outlook

import "context"

// CalendarGroupProperties are the fields of a calendar group.
type CalendarGroupProperties struct {
	ID        string `json:"Id,omitempty"`
	Name      string `json:"Name,omitempty"`
	ChangeKey string `json:"ChangeKey,omitempty"`
	ClassID   string `json:"ClassId,omitempty"`
}

// CalendarGroupPayload is the writable subset of a calendar group.
type CalendarGroupPayload struct {
	Name string `json:"Name" validate:"required"`
}

// CalendarGroupFetcher is a handle to one calendar group.
type CalendarGroupFetcher struct {
	Fetcher[*CalendarGroup]
}

func newCalendarGroupFetcher(c *Context, p Path, err error, id string) *CalendarGroupFetcher {
	return &CalendarGroupFetcher{Fetcher: newFetcher(c, p, err, id, "getCalendarGroup", hydrateCalendarGroup)}
}

// Calendars returns the calendars in this group.
func (f *CalendarGroupFetcher) Calendars() *Calendars {
	return navigate(&f.Entity, "Calendars", newCalendars)
}

// Delete deletes the calendar group.
func (f *CalendarGroupFetcher) Delete(ctx context.Context) error {
	return executeVoid(ctx, &f.Entity, "deleteCalendarGroup")
}

// CalendarGroup is a hydrated calendar group.
type CalendarGroup struct {
	CalendarGroupFetcher
	CalendarGroupProperties
}

func hydrateCalendarGroup(c *Context, p Path, raw []byte) (*CalendarGroup, error) {
	return hydrateJSON[CalendarGroup](c, p, raw)
}

func (g *CalendarGroup) bind(c *Context, p Path) {
	g.CalendarGroupFetcher = *newCalendarGroupFetcher(c, p, nil, g.ID)
}

// Payload returns the writable fields.
func (g *CalendarGroup) Payload() CalendarGroupPayload {
	return CalendarGroupPayload{Name: g.Name}
}

// Update saves the writable fields and returns the updated group.
func (g *CalendarGroup) Update(ctx context.Context) (*CalendarGroup, error) {
	body, err := encodePayload(g.Payload())
	if err != nil {
		return nil, err
	}
	return execute(ctx, &g.Entity, "updateCalendarGroup", hydrateCalendarGroup, atSelf, body)
}

// CalendarGroups is a collection of calendar groups.
type CalendarGroups struct {
	Entity
}

func newCalendarGroups(c *Context, p Path, err error) *CalendarGroups {
	return &CalendarGroups{Entity: newEntity(c, p, err)}
}

// GetCalendarGroup returns a handle to one group by id.
func (gs *CalendarGroups) GetCalendarGroup(id string) *CalendarGroupFetcher {
	f := itemFetcher(&gs.Entity, id, "getCalendarGroup", hydrateCalendarGroup)
	return &CalendarGroupFetcher{Fetcher: f}
}

// GetCalendarGroups returns a fresh query over the collection.
func (gs *CalendarGroups) GetCalendarGroups() *CollectionFetcher[*CalendarGroup] {
	return newCollectionFetcher(&gs.Entity, "getCalendarGroups", hydrateCalendarGroup)
}

// AddCalendarGroup creates a calendar group.
func (gs *CalendarGroups) AddCalendarGroup(ctx context.Context, item CalendarGroupPayload) (*CalendarGroup, error) {
	body, err := encodePayload(item)
	if err != nil {
		return nil, err
	}
	return execute(ctx, &gs.Entity, "addCalendarGroup", hydrateCalendarGroup, atChild, body)
}
