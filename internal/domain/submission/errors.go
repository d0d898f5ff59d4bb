package submission

import "errors"

// Sentinel rejection reasons. The wording is shown to users verbatim, so
// expired and not-yet-open forecasts are distinguished here even though
// the calendar displays both as locked.
var (
	ErrForecastExpired = errors.New("forecast week has expired; only the upcoming week is open")
	ErrForecastNotOpen = errors.New("forecast week is not open yet; only the upcoming week is open")
	ErrActualFuture    = errors.New("actuals cannot be submitted for a week that has not happened yet")
)
