package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// PresignedURLRequest asks for a presigned object-storage URL. Uploads are a
// direct PUT to the returned URL with a matching Content-Type.
type PresignedURLRequest struct {
	ObjectName  string `json:"object_name" validate:"required,min=1,max=255"`
	Operation   string `json:"operation"   validate:"required,oneof=put_object get_object"`
	ContentType string `json:"content_type"`
	// ExpiresIn in seconds; defaults: 3600 for reads, 600 for writes
	ExpiresIn int `json:"expires_in" validate:"omitempty,min=1,max=86400"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PresignedURLResponse struct {
	URL       string `json:"url"`
	Operation string `json:"operation"`
	ExpiresIn int    `json:"expires_in"`
}
