// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// DefaultLookupTTL is how long faculty and department listings are
// reused when LookupsConfig.TTL is zero.
const DefaultLookupTTL = 10 * time.Minute

// LookupSource is the subset of Client that Lookups reads through.
type LookupSource interface {
	Faculties(ctx context.Context) ([]Faculty, error)
	Departments(ctx context.Context, facultyID int64) ([]Department, error)
}

// Lookups caches the public academic listings, which change rarely and
// are needed by several forms. Concurrent misses for the same listing
// share one request. Errors are not cached.
type Lookups struct {
	source LookupSource
	cache  *cache.Cache
	group  singleflight.Group
}

// NewLookups returns a cache over source. A non-positive ttl uses
// DefaultLookupTTL.
func NewLookups(source LookupSource, ttl time.Duration) *Lookups {
	if ttl <= 0 {
		ttl = DefaultLookupTTL
	}
	return &Lookups{
		source: source,
		cache:  cache.New(ttl, 2*ttl),
	}
}

// Faculties returns the cached faculty list, fetching it on a miss.
func (l *Lookups) Faculties(ctx context.Context) ([]Faculty, error) {
	value, err := l.load(ctx, "faculties", func(ctx context.Context) (any, error) {
		return l.source.Faculties(ctx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]Faculty), nil
}

// Departments returns the cached departments of a faculty (all
// departments when facultyID is not positive).
func (l *Lookups) Departments(ctx context.Context, facultyID int64) ([]Department, error) {
	if facultyID < 0 {
		facultyID = 0
	}
	key := "departments:" + strconv.FormatInt(facultyID, 10)
	value, err := l.load(ctx, key, func(ctx context.Context) (any, error) {
		return l.source.Departments(ctx, facultyID)
	})
	if err != nil {
		return nil, err
	}
	return value.([]Department), nil
}

// FacultyByName finds a faculty by exact name.
func (l *Lookups) FacultyByName(ctx context.Context, name string) (*Faculty, error) {
	faculties, err := l.Faculties(ctx)
	if err != nil {
		return nil, err
	}
	for index := range faculties {
		if faculties[index].Name == name {
			return &faculties[index], nil
		}
	}
	return nil, fmt.Errorf("api: no faculty named %q", name)
}

// Flush drops every cached listing.
func (l *Lookups) Flush() { l.cache.Flush() }

// load returns the cached value for key or fetches it. The fetch is
// shared by concurrent misses and runs without the caller's
// cancellation, so one caller giving up does not fail the others. A
// caller whose ctx ends stops waiting with a network error.
func (l *Lookups) load(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	if value, found := l.cache.Get(key); found {
		return value, nil
	}
	flight := l.group.DoChan(key, func() (any, error) {
		value, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		l.cache.SetDefault(key, value)
		return value, nil
	})
	select {
	case result := <-flight:
		return result.Val, result.Err
	case <-ctx.Done():
		return nil, networkError(ctx.Err())
	}
}
