package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrSource   = "source"
	AttrResource = "resource"
	AttrRegion   = "region"
	AttrOutcome  = "outcome"
)
