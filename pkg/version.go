package bikeq

var (
	// Version of bikeq, set at build time.
	Version = "v0.1.0"
	// Build timestamp, set at build time.
	Build = "n/a"
)
