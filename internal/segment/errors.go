package segment

import "errors"

var (
	// ErrInvalidArgument reports a query outside the method's contract, such
	// as a rebar allowable stress query for a compression task.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidPoi reports a flexural stress artifact whose point of interest
	// has no valid ID.
	ErrInvalidPoi = errors.New("point of interest has no valid id")

	// ErrAlreadySet reports a single-valued check written twice during fill.
	ErrAlreadySet = errors.New("check already set")

	// ErrBuilt reports use of a Builder after Build.
	ErrBuilt = errors.New("builder already built")

	// ErrMissingService reports a Build call without a required collaborator.
	ErrMissingService = errors.New("missing collaborator service")
)
