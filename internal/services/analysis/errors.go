package analysis

import (
	"errors"
	"fmt"

	"github.com/chartproof/chartproof/internal/models"
)

var (
	// ErrUnknownStrategy indicates the requested strategy ID is not one of
	// the supported methodologies.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrMissingImage indicates the request carried no chart image.
	ErrMissingImage = errors.New("image data is required")

	// ErrInvalidImage indicates the image payload could not be decoded.
	ErrInvalidImage = errors.New("invalid image data")
)

// InvalidChartError terminates the pipeline when the uploaded image is not a
// usable financial chart. It carries the full validation result so handlers
// can return the rejection reason to the client.
type InvalidChartError struct {
	Result *models.ValidationResult
}

func (e *InvalidChartError) Error() string {
	if e.Result != nil && e.Result.RejectionReason != "" {
		return fmt.Sprintf("invalid chart: %s", e.Result.RejectionReason)
	}
	return "invalid chart"
}

// AsInvalidChart unwraps err into an InvalidChartError if it is one.
func AsInvalidChart(err error) (*InvalidChartError, bool) {
	var ice *InvalidChartError
	if errors.As(err, &ice) {
		return ice, true
	}
	return nil, false
}
