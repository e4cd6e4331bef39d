package mockdataset

import (
	"context"

	"github.com/StroziSolci/Projeto-Fifa/model"
	"github.com/stretchr/testify/mock"
)

type State struct {
	mock.Mock
}

func (s *State) Load(ctx context.Context) (*model.Dataset, error) {
	args := s.Called(ctx)

	var d *model.Dataset
	if args.Get(0) != nil {
		d = args.Get(0).(*model.Dataset)
	}
	return d, args.Error(1)
}

func (s *State) Dataset() (*model.Dataset, error) {
	args := s.Called()

	var d *model.Dataset
	if args.Get(0) != nil {
		d = args.Get(0).(*model.Dataset)
	}
	return d, args.Error(1)
}
