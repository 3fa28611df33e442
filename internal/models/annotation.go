package models

// Annotation element types understood by the overlay renderer.
const (
	AnnotationTrendline = "trendline"
	AnnotationZone      = "zone"
	AnnotationLevel     = "level"
	AnnotationPattern   = "pattern"
	AnnotationEntry     = "entry"
	AnnotationStop      = "stop"
	AnnotationTarget    = "target"
)

// ChartAnnotation is one drawable overlay element for a chart image.
// Coordinates are percentages of the image dimensions (0-100), origin
// top-left; point elements set only X1/Y1.
type ChartAnnotation struct {
	Type        string  `json:"type"`
	Label       string  `json:"label"`
	Description string  `json:"description,omitempty"`
	X1          float64 `json:"x1"`
	Y1          float64 `json:"y1"`
	X2          float64 `json:"x2,omitempty"`
	Y2          float64 `json:"y2,omitempty"`
	Color       string  `json:"color,omitempty"`
}

// AnnotateRequest is the body of POST /api/annotate.
type AnnotateRequest struct {
	Strategy      string `json:"strategy"`
	ImageBase64   string `json:"imageBase64"`
	ImageMimeType string `json:"imageMimeType"`
}

// AnnotationResult is the structured overlay data for one chart.
type AnnotationResult struct {
	Annotations []ChartAnnotation `json:"annotations"`
	Summary     string            `json:"summary"`
}
