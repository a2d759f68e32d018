package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hakwonhub/dashboard-gateway/internal/core/domain"
	"github.com/hakwonhub/dashboard-gateway/internal/core/normalize"
	"github.com/hakwonhub/dashboard-gateway/internal/core/ports"
)

// reference describes how one foreign-key-like field resolves to a label:
// which collection to look the id up in, and the field priority to read.
type reference struct {
	lookup domain.Resource
	fields []string
}

// references maps each resource's reference fields. Courses point at a
// subject and a teacher, enrollments and essays at a student and a course.
var references = map[domain.Resource]map[string]reference{
	domain.ResourceCourses: {
		"subject": {domain.ResourceSubjects, normalize.NamedFields},
		"teacher": {domain.ResourceTeachers, normalize.PersonFields},
	},
	domain.ResourceEnrollments: {
		"student": {domain.ResourceStudents, normalize.PersonFields},
		"course":  {domain.ResourceCourses, normalize.NamedFields},
	},
	domain.ResourceEssays: {
		"student": {domain.ResourceStudents, normalize.PersonFields},
		"course":  {domain.ResourceCourses, normalize.NamedFields},
	},
}

// RosterService assembles dashboard list rows (fetch, normalize, resolve
// reference labels against cached lookups) and passes mutations through to
// the upstream API.
type RosterService struct {
	client ports.UpstreamClient
	cache  ports.LookupCache
	log    zerolog.Logger
}

func NewRosterService(client ports.UpstreamClient, cache ports.LookupCache, log zerolog.Logger) *RosterService {
	return &RosterService{client: client, cache: cache, log: log}
}

func (s *RosterService) List(ctx context.Context, accessToken string, resource domain.Resource) ([]ports.RosterRow, error) {
	body, err := s.client.ListRaw(ctx, accessToken, resource)
	if err != nil {
		return nil, err
	}

	records := normalize.FromJSON(body)
	refs := references[resource]

	// One lookup fetch per referenced collection, not per row.
	lookups := make(map[domain.Resource][]any, len(refs))
	for _, ref := range refs {
		if _, ok := lookups[ref.lookup]; !ok {
			lookups[ref.lookup] = s.lookup(ctx, accessToken, ref.lookup)
		}
	}

	rows := make([]ports.RosterRow, 0, len(records))
	for _, rec := range records {
		m, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		row := ports.RosterRow{Record: m}
		for field, ref := range refs {
			if row.Labels == nil {
				row.Labels = make(map[string]string, len(refs))
			}
			row.Labels[field] = normalize.ReferenceLabel(m[field], lookups[ref.lookup], ref.fields...)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *RosterService) Create(ctx context.Context, accessToken string, resource domain.Resource, payload map[string]any) ([]byte, error) {
	body, err := s.client.Create(ctx, accessToken, resource, payload)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, resource)
	return body, nil
}

func (s *RosterService) Update(ctx context.Context, accessToken string, resource domain.Resource, id int64, payload map[string]any) ([]byte, error) {
	body, err := s.client.Update(ctx, accessToken, resource, id, payload)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, resource)
	return body, nil
}

func (s *RosterService) Delete(ctx context.Context, accessToken string, resource domain.Resource, id int64) error {
	if err := s.client.Delete(ctx, accessToken, resource, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, resource)
	return nil
}

// lookup returns the cached lookup sequence for a resource, fetching through
// the normalizer on a miss. Fetch failures degrade to an empty sequence so
// labels fall back to "#<id>" instead of failing the whole list.
func (s *RosterService) lookup(ctx context.Context, accessToken string, resource domain.Resource) []any {
	if cached, ok := s.cache.Get(ctx, resource); ok {
		return cached
	}
	body, err := s.client.ListRaw(ctx, accessToken, resource)
	if err != nil {
		s.log.Warn().Err(err).Str("resource", string(resource)).Msg("lookup fetch failed")
		return nil
	}
	records := normalize.FromJSON(body)
	s.cache.Set(ctx, resource, records)
	return records
}
