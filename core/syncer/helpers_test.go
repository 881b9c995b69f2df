package syncer

import (
	"context"
	"fmt"
	"strconv"

	"catalog-sync/core/source"
	"catalog-sync/core/target"
)

// fakeAdapter serves scripted pages of entities.
type fakeAdapter struct {
	kind     source.Kind
	deps     []source.Kind
	pages    [][]source.Entity
	fetchErr error
}

func (a *fakeAdapter) Kind() source.Kind        { return a.kind }
func (a *fakeAdapter) DependsOn() []source.Kind { return a.deps }

func (a *fakeAdapter) FetchPage(ctx context.Context, cursor string, limit int) ([]source.Entity, string, error) {
	if a.fetchErr != nil {
		return nil, "", a.fetchErr
	}
	idx := 0
	if cursor != "" {
		idx, _ = strconv.Atoi(cursor)
	}
	if idx >= len(a.pages) {
		return nil, "", nil
	}
	next := ""
	if idx+1 < len(a.pages) {
		next = strconv.Itoa(idx + 1)
	}
	return a.pages[idx], next, nil
}

func (a *fakeAdapter) BuildPayload(e source.Entity) (target.Payload, error) {
	fields := make(map[string]any, len(e.Fields))
	for _, f := range e.Fields {
		fields[f.Key] = f.Value
	}
	return target.Payload{NaturalKey: e.NaturalKey, Fields: fields}, nil
}

// fakeTarget is an in-memory target platform recording every call.
type fakeTarget struct {
	records map[source.Kind]map[string]target.Payload // target id -> last payload
	byKey   map[source.Kind]map[string]string         // natural key -> target id
	nextID  int

	lookups, enumerates, creates, updates, deletes int

	enumerateErr error
	userErrors   []target.UserError // attached to the next mutation
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{
		records: make(map[source.Kind]map[string]target.Payload),
		byKey:   make(map[source.Kind]map[string]string),
	}
}

func (f *fakeTarget) mutations() int { return f.creates + f.updates + f.deletes }

// seed places a pre-existing record on the target without any mapping.
func (f *fakeTarget) seed(kind source.Kind, naturalKey, id string) {
	f.ensure(kind)
	f.records[kind][id] = target.Payload{NaturalKey: naturalKey}
	f.byKey[kind][naturalKey] = id
}

func (f *fakeTarget) ensure(kind source.Kind) {
	if f.records[kind] == nil {
		f.records[kind] = make(map[string]target.Payload)
		f.byKey[kind] = make(map[string]string)
	}
}

func (f *fakeTarget) LookupByNaturalKey(ctx context.Context, kind source.Kind, key string) (string, error) {
	f.lookups++
	return f.byKey[kind][key], nil
}

func (f *fakeTarget) EnumerateIDs(ctx context.Context, kind source.Kind, cursor string) (*target.IDPage, error) {
	f.enumerates++
	if f.enumerateErr != nil {
		return nil, f.enumerateErr
	}
	page := &target.IDPage{}
	for id := range f.records[kind] {
		page.IDs = append(page.IDs, id)
	}
	return page, nil
}

func (f *fakeTarget) Create(ctx context.Context, kind source.Kind, payload target.Payload) (*target.MutationResult, error) {
	f.creates++
	if errs := f.takeUserErrors(); errs != nil {
		return &target.MutationResult{UserErrors: errs}, nil
	}
	f.ensure(kind)
	f.nextID++
	id := fmt.Sprintf("T%d", f.nextID)
	f.records[kind][id] = payload
	f.byKey[kind][payload.NaturalKey] = id
	return &target.MutationResult{TargetID: id}, nil
}

func (f *fakeTarget) Update(ctx context.Context, kind source.Kind, targetID string, payload target.Payload) (*target.MutationResult, error) {
	f.updates++
	if errs := f.takeUserErrors(); errs != nil {
		return &target.MutationResult{UserErrors: errs}, nil
	}
	f.ensure(kind)
	f.records[kind][targetID] = payload
	f.byKey[kind][payload.NaturalKey] = targetID
	return &target.MutationResult{TargetID: targetID}, nil
}

func (f *fakeTarget) Delete(ctx context.Context, kind source.Kind, targetID string) (bool, error) {
	f.deletes++
	if _, ok := f.records[kind][targetID]; !ok {
		return false, nil
	}
	delete(f.records[kind], targetID)
	for key, id := range f.byKey[kind] {
		if id == targetID {
			delete(f.byKey[kind], key)
		}
	}
	return true, nil
}

func (f *fakeTarget) takeUserErrors() []target.UserError {
	errs := f.userErrors
	f.userErrors = nil
	return errs
}

func fileEntity(externalID, path, alt string) source.Entity {
	return source.Entity{
		Kind:       source.KindFile,
		ExternalID: externalID,
		NaturalKey: path,
		Fields: []source.Field{
			{Key: "alt", Type: source.FieldText, Value: alt},
			{Key: "content_type", Type: source.FieldText, Value: "image/png"},
		},
	}
}
