// Package classifier counts error and slow-response lines within a log window.
package classifier

// Default markers matching the lines emitted by the service being watched.
const (
	// DefaultErrorMarker identifies an ERROR-level record in the
	// "<timestamp> | <LEVEL> | <context> | <message>" line format.
	DefaultErrorMarker = " | ERROR | "

	// DefaultSlowMarker identifies a slow upstream response.
	DefaultSlowMarker = "Simulated slow GMS"
)

// Counts holds the classification of a single window.
type Counts struct {
	// Errors is the number of lines containing the error marker.
	Errors int

	// Slow is the number of lines containing the slow marker.
	Slow int
}
