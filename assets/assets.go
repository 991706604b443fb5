// Package assets embeds the station layout documents shipped with the viewer.
package assets

import "embed"

//go:embed layouts/*.json
var Layouts embed.FS

// Default layout and schema paths inside Layouts.
const (
	StationLayout = "layouts/station.json"
	StationSchema = "layouts/station.schema.json"
)
