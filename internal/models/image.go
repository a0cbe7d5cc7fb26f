package models

import "mime/multipart"

// ImageInfo describes an uploaded image. ContentType is what the client
// declared for the part (null when absent); DetectedType is sniffed from the
// bytes. Size is in KiB rounded to two decimals.
type ImageInfo struct {
	Filename     string  `json:"filename"`
	ContentType  *string `json:"content_type"`
	DetectedType string  `json:"detected_type"`
	SizeKB       float64 `json:"size_kb"`
}

// UploadImagesRequest is the multipart form of the batch upload
type UploadImagesRequest struct {
	Images []*multipart.FileHeader `form:"images" binding:"required"`
}

// UploadImageRequest is the multipart form of the single upload
type UploadImageRequest struct {
	Image *multipart.FileHeader `form:"image" binding:"required"`
}
