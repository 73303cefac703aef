package mock

import (
	"context"

	"github.com/filmdex/filmdex"
)

var _ filmdex.ReleaseService = (*ReleaseService)(nil)

// ReleaseService is a mock implementation of filmdex.ReleaseService.
type ReleaseService struct {
	CreateReleaseFn        func(ctx context.Context, release *filmdex.Release) error
	FindReleaseByIDFn      func(ctx context.Context, id string) (*filmdex.Release, error)
	FindReleasesFn         func(ctx context.Context, filter filmdex.ReleaseFilter) ([]*filmdex.Release, error)
	UpsertReleaseFn        func(ctx context.Context, release *filmdex.Release) error
	DeleteReleaseFn        func(ctx context.Context, id string) error
	DeleteReleasesBySiteFn func(ctx context.Context, siteID string) error
}

func (s *ReleaseService) CreateRelease(ctx context.Context, release *filmdex.Release) error {
	return s.CreateReleaseFn(ctx, release)
}

func (s *ReleaseService) FindReleaseByID(ctx context.Context, id string) (*filmdex.Release, error) {
	return s.FindReleaseByIDFn(ctx, id)
}

func (s *ReleaseService) FindReleases(ctx context.Context, filter filmdex.ReleaseFilter) ([]*filmdex.Release, error) {
	return s.FindReleasesFn(ctx, filter)
}

func (s *ReleaseService) UpsertRelease(ctx context.Context, release *filmdex.Release) error {
	return s.UpsertReleaseFn(ctx, release)
}

func (s *ReleaseService) DeleteRelease(ctx context.Context, id string) error {
	return s.DeleteReleaseFn(ctx, id)
}

func (s *ReleaseService) DeleteReleasesBySite(ctx context.Context, siteID string) error {
	return s.DeleteReleasesBySiteFn(ctx, siteID)
}
