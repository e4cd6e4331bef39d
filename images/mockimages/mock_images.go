package mockimages

import (
	"context"

	"github.com/StroziSolci/Projeto-Fifa/images"
	"github.com/stretchr/testify/mock"
)

type Resolver struct {
	mock.Mock
}

func (r *Resolver) Resolve(ctx context.Context, url string) (string, bool) {
	args := r.Called(ctx, url)
	return args.String(0), args.Bool(1)
}

func (r *Resolver) ResolveAll(ctx context.Context, urls []string) map[string]string {
	args := r.Called(ctx, urls)

	var res map[string]string
	if args.Get(0) != nil {
		res = args.Get(0).(map[string]string)
	}
	return res
}

func (r *Resolver) Stats() images.Stats {
	args := r.Called()
	return args.Get(0).(images.Stats)
}
