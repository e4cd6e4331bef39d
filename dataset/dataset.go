package dataset

import (
	"context"

	"github.com/StroziSolci/Projeto-Fifa/model"
)

// State holds the dataset for the lifetime of the server. It is written once
// by Load and read by every view.
type State interface {
	// Load reads, filters and sorts the dataset on the first call. Every later
	// call returns the result of the first one without reading the file again.
	Load(ctx context.Context) (*model.Dataset, error)
	// Dataset returns the loaded dataset, or ErrNotLoaded if Load has not
	// completed successfully. It never triggers a load.
	Dataset() (*model.Dataset, error)
}
