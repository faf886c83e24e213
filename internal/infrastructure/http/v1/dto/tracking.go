package dto

// UpdateTrackingRequest moves an inspection along the 13-point route.
type UpdateTrackingRequest struct {
	Point   int    `json:"point" binding:"required,min=1,max=13"`
	Comment string `json:"comment"`

	// Force pushes an out-of-order point. Honored only for administrators
	// when force updates are enabled.
	Force bool `json:"force"`
}

// BatchUploadResponse returns the stored URLs of a batch upload, in the
// order the files were sent.
type BatchUploadResponse struct {
	URLs []string `json:"urls"`
}
