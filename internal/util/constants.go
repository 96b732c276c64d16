package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
	StorageS3    = "s3"
)

const (
	MimeImage = "image/"
)

// Profile photos larger than this are rejected before upload.
const MaxPhotoSize = 5 << 20

var AllowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
