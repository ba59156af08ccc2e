package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/rendez/internal/helpers"
	"github.com/joshua-takyi/rendez/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// EventService owns event records. Every mutation is a read followed by a single
// full-field $set; there is no locking, so concurrent writers to one event can
// overwrite each other.
type EventService struct {
	events models.Collection[models.Event]
	logger *slog.Logger
	now    func() time.Time
}

func NewEventService(events models.Collection[models.Event], logger *slog.Logger) *EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventService{
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

func byID(id string) bson.M {
	return bson.M{"_id": id}
}

func (es *EventService) Create(ctx context.Context, host, title, description, location string, ageReq, capacity int) (*models.Event, error) {
	now := es.now().UTC()
	event := models.Event{
		ID:          uuid.New().String(),
		Host:        strings.TrimSpace(host),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Location:    strings.TrimSpace(location),
		AgeReq:      ageReq,
		Capacity:    capacity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	event.Normalize()

	if err := models.Validate.Struct(event); err != nil {
		return nil, fmt.Errorf("invalid event data provided: %w", err)
	}

	id, err := es.events.CreateOne(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	event.ID = id

	es.logger.Debug("event created", "event_id", id, "host", event.Host)
	return &event, nil
}

func (es *EventService) load(ctx context.Context, id string) (*models.Event, error) {
	event, err := es.events.ReadOne(ctx, byID(id))
	if err != nil {
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	if event == nil {
		return nil, models.NotFound("event not found")
	}
	event.Normalize()
	return event, nil
}

func (es *EventService) GetByID(ctx context.Context, id string) (*models.Event, error) {
	return es.load(ctx, id)
}

// GetMany lists matching events, most recently updated first.
func (es *EventService) GetMany(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	events, err := es.events.ReadMany(ctx, filter.BSON(), bson.D{{Key: "updated_at", Value: -1}})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	for i := range events {
		events[i].Normalize()
	}
	return events, nil
}

func (es *EventService) GetByHost(ctx context.Context, host string) ([]models.Event, error) {
	return es.GetMany(ctx, models.EventFilter{Host: host})
}

// Update merges the given scalar fields into the event. The host, the id, the
// RSVP and tag sets and the timestamps cannot be set this way.
func (es *EventService) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return models.NotAllowed("no fields to update")
	}

	if _, ok := fields["host"]; ok {
		return models.NotAllowed("forbidden field: host")
	}
	keys := sortedKeys(fields)
	for _, key := range keys {
		if models.ForbiddenUpdateFields[key] {
			return models.NotAllowed(fmt.Sprintf("forbidden field: %s", key))
		}
	}

	set := bson.M{}
	for _, key := range keys {
		normalized, err := normalizeField(key, fields[key])
		if err != nil {
			return err
		}
		set[key] = normalized
	}
	set["updated_at"] = es.now().UTC()

	matched, err := es.events.UpdateOne(ctx, byID(id), set)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if matched == 0 {
		return models.NotFound("event not found")
	}

	es.logger.Debug("event updated", "event_id", id, "fields", len(fields))
	return nil
}

func normalizeField(key string, value interface{}) (interface{}, error) {
	switch key {
	case models.FieldTitle, models.FieldDescription, models.FieldLocation:
		s, ok := value.(string)
		if !ok {
			return nil, models.NotAllowed(fmt.Sprintf("%s must be a string", key))
		}
		s = strings.TrimSpace(s)
		if key == models.FieldTitle {
			if s == "" {
				return nil, models.NotAllowed("title cannot be empty")
			}
			if err := models.Validate.Var(s, models.TitleRules); err != nil {
				return nil, models.NotAllowed("title must be at most 200 characters")
			}
		}
		return s, nil
	case models.FieldAgeReq, models.FieldCapacity:
		n, ok := toInt(value)
		if !ok || n < 0 {
			return nil, models.NotAllowed(fmt.Sprintf("%s must be a non-negative integer", key))
		}
		return n, nil
	default:
		return nil, models.NotAllowed(fmt.Sprintf("unknown field: %s", key))
	}
}

// sortedKeys gives Update a fixed check order so the reported error does not
// depend on map iteration.
func sortedKeys(fields map[string]interface{}) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// toInt accepts the numeric types a decoded JSON or BSON body can carry.
func toInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}

func (es *EventService) Delete(ctx context.Context, id string) error {
	deleted, err := es.events.DeleteOne(ctx, byID(id))
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if deleted == 0 {
		return models.NotFound("event not found")
	}
	es.logger.Debug("event deleted", "event_id", id)
	return nil
}

func (es *EventService) AssertIsHost(ctx context.Context, user, id string) error {
	event, err := es.load(ctx, id)
	if err != nil {
		return err
	}
	if event.Host != user {
		return models.NotAllowed("not the host of this event")
	}
	return nil
}

func (es *EventService) AssertIsNotHost(ctx context.Context, user, id string) error {
	_, err := es.loadForGuest(ctx, user, id)
	return err
}

func (es *EventService) AssertIsInterested(ctx context.Context, user, id string) error {
	event, err := es.load(ctx, id)
	if err != nil {
		return err
	}
	if !helpers.NewSet(event.Interested...).Has(user) {
		return models.NotFound("not interested")
	}
	return nil
}

func (es *EventService) AssertIsNotInterested(ctx context.Context, user, id string) error {
	event, err := es.load(ctx, id)
	if err != nil {
		return err
	}
	if helpers.NewSet(event.Interested...).Has(user) {
		return models.NotAllowed("already interested")
	}
	return nil
}

func (es *EventService) AssertIsAttending(ctx context.Context, user, id string) error {
	event, err := es.load(ctx, id)
	if err != nil {
		return err
	}
	if !helpers.NewSet(event.Attending...).Has(user) {
		return models.NotFound("not attending")
	}
	return nil
}

func (es *EventService) AssertIsNotAttending(ctx context.Context, user, id string) error {
	event, err := es.load(ctx, id)
	if err != nil {
		return err
	}
	if helpers.NewSet(event.Attending...).Has(user) {
		return models.NotAllowed("already attending")
	}
	return nil
}

// loadForGuest loads the event and rejects its host.
func (es *EventService) loadForGuest(ctx context.Context, person, id string) (*models.Event, error) {
	event, err := es.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Host == person {
		return nil, models.NotAllowed("host cannot RSVP to their own event")
	}
	return event, nil
}

func (es *EventService) IndicateInterest(ctx context.Context, person, id string) error {
	event, err := es.loadForGuest(ctx, person, id)
	if err != nil {
		return err
	}
	interested, attending := helpers.NewSet(event.Interested...), helpers.NewSet(event.Attending...)
	interested.Add(person)
	attending.Remove(person)
	return es.saveRSVP(ctx, id, person, "interested", interested, attending)
}

func (es *EventService) RemoveInterest(ctx context.Context, person, id string) error {
	event, err := es.loadForGuest(ctx, person, id)
	if err != nil {
		return err
	}
	interested, attending := helpers.NewSet(event.Interested...), helpers.NewSet(event.Attending...)
	if !interested.Remove(person) {
		return models.NotFound("not interested")
	}
	attending.Remove(person)
	return es.saveRSVP(ctx, id, person, "none", interested, attending)
}

func (es *EventService) IndicateAttendance(ctx context.Context, person, id string) error {
	event, err := es.loadForGuest(ctx, person, id)
	if err != nil {
		return err
	}
	interested, attending := helpers.NewSet(event.Interested...), helpers.NewSet(event.Attending...)
	attending.Add(person)
	interested.Remove(person)
	return es.saveRSVP(ctx, id, person, "attending", interested, attending)
}

func (es *EventService) RemoveAttendance(ctx context.Context, person, id string) error {
	event, err := es.loadForGuest(ctx, person, id)
	if err != nil {
		return err
	}
	interested, attending := helpers.NewSet(event.Interested...), helpers.NewSet(event.Attending...)
	if !attending.Remove(person) {
		return models.NotFound("not attending")
	}
	interested.Remove(person)
	return es.saveRSVP(ctx, id, person, "none", interested, attending)
}

func (es *EventService) saveRSVP(ctx context.Context, id, person, state string, interested, attending helpers.Set) error {
	matched, err := es.events.UpdateOne(ctx, byID(id), bson.M{
		"interested": interested.Slice(),
		"attending":  attending.Slice(),
		"updated_at": es.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to save rsvp: %w", err)
	}
	if matched == 0 {
		return models.NotFound("event not found")
	}
	es.logger.Debug("rsvp updated", "event_id", id, "person", person, "state", state)
	return nil
}

func (es *EventService) AddTag(ctx context.Context, id string, kind models.TagKind, tag string) error {
	return es.mutateTag(ctx, id, kind, tag, true)
}

func (es *EventService) RemoveTag(ctx context.Context, id string, kind models.TagKind, tag string) error {
	return es.mutateTag(ctx, id, kind, tag, false)
}

func (es *EventService) AddTopic(ctx context.Context, id, topic string) error {
	return es.AddTag(ctx, id, models.TagTopics, topic)
}

func (es *EventService) RemoveTopic(ctx context.Context, id, topic string) error {
	return es.RemoveTag(ctx, id, models.TagTopics, topic)
}

func (es *EventService) AddAmenity(ctx context.Context, id, amenity string) error {
	return es.AddTag(ctx, id, models.TagAmenities, amenity)
}

func (es *EventService) RemoveAmenity(ctx context.Context, id, amenity string) error {
	return es.RemoveTag(ctx, id, models.TagAmenities, amenity)
}

func (es *EventService) AddAccommodation(ctx context.Context, id, accommodation string) error {
	return es.AddTag(ctx, id, models.TagAccommodations, accommodation)
}

func (es *EventService) RemoveAccommodation(ctx context.Context, id, accommodation string) error {
	return es.RemoveTag(ctx, id, models.TagAccommodations, accommodation)
}

func (es *EventService) mutateTag(ctx context.Context, id string, kind models.TagKind, tag string, add bool) error {
	event, err := es.load(ctx, id)
	if err != nil {
		return err
	}

	if !kind.Valid() {
		return models.NotAllowed(fmt.Sprintf("unknown tag kind: %s", kind))
	}
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return models.NotAllowed(fmt.Sprintf("%s cannot be empty", kind.Singular()))
	}

	tags := helpers.NewSet(event.Tags(kind)...)
	if add && !tags.Add(tag) {
		return models.NotAllowed(fmt.Sprintf("%s already added", kind.Singular()))
	}
	if !add && !tags.Remove(tag) {
		return models.NotAllowed(fmt.Sprintf("%s not present", kind.Singular()))
	}

	matched, err := es.events.UpdateOne(ctx, byID(id), bson.M{
		string(kind): tags.Slice(),
		"updated_at": es.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", kind, err)
	}
	if matched == 0 {
		return models.NotFound("event not found")
	}

	es.logger.Debug("tag updated", "event_id", id, "kind", string(kind), "tag", tag, "added", add)
	return nil
}
