package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/joshua-takyi/rendez/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeCollection keeps documents as bson.M so updates behave like a $set on the stored shape.
type fakeCollection struct {
	docs    map[string]bson.M
	err     error // if set, every call returns it
	updates int
}

func newFakeCollection() *fakeCollection {
	return &fakeCollection{docs: map[string]bson.M{}}
}

func (f *fakeCollection) CreateOne(ctx context.Context, doc models.Event) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return "", err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return "", err
	}
	if _, exists := f.docs[doc.ID]; exists {
		return "", errors.New("duplicate key")
	}
	f.docs[doc.ID] = m
	return doc.ID, nil
}

func matches(doc, filter bson.M) bool {
	for k, v := range filter {
		if doc[k] != v {
			return false
		}
	}
	return true
}

func decodeEvent(doc bson.M) (models.Event, error) {
	var ev models.Event
	raw, err := bson.Marshal(doc)
	if err != nil {
		return ev, err
	}
	err = bson.Unmarshal(raw, &ev)
	return ev, err
}

func (f *fakeCollection) ReadOne(ctx context.Context, filter bson.M) (*models.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, doc := range f.docs {
		if matches(doc, filter) {
			ev, err := decodeEvent(doc)
			if err != nil {
				return nil, err
			}
			return &ev, nil
		}
	}
	return nil, nil
}

func asTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case primitive.DateTime:
		return t.Time()
	}
	return time.Time{}
}

func (f *fakeCollection) ReadMany(ctx context.Context, filter bson.M, sortSpec bson.D) ([]models.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	var matched []bson.M
	for _, doc := range f.docs {
		if matches(doc, filter) {
			matched = append(matched, doc)
		}
	}
	if len(sortSpec) > 0 {
		key, desc := sortSpec[0].Key, sortSpec[0].Value == -1
		sort.Slice(matched, func(i, j int) bool {
			a, b := asTime(matched[i][key]), asTime(matched[j][key])
			if desc {
				return a.After(b)
			}
			return a.Before(b)
		})
	}
	out := []models.Event{}
	for _, doc := range matched {
		ev, err := decodeEvent(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

func (f *fakeCollection) UpdateOne(ctx context.Context, filter bson.M, set bson.M) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	for _, doc := range f.docs {
		if matches(doc, filter) {
			for k, v := range set {
				doc[k] = v
			}
			f.updates++
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeCollection) DeleteOne(ctx context.Context, filter bson.M) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	for id, doc := range f.docs {
		if matches(doc, filter) {
			delete(f.docs, id)
			return 1, nil
		}
	}
	return 0, nil
}

// tickClock advances one second per call so updated_at ordering is deterministic.
type tickClock struct{ t time.Time }

func (c *tickClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}
