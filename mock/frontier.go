package mock

import (
	"context"

	"github.com/filmdex/filmdex"
)

var _ filmdex.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of filmdex.URLFrontier.
type URLFrontier struct {
	PushFn func(link filmdex.DiscoveredLink) bool
	PopFn  func() (filmdex.DiscoveredLink, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (f *URLFrontier) Push(link filmdex.DiscoveredLink) bool {
	return f.PushFn(link)
}

func (f *URLFrontier) Pop() (filmdex.DiscoveredLink, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

func (f *URLFrontier) Seen(url string) bool {
	return f.SeenFn(url)
}

var _ filmdex.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of filmdex.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}
