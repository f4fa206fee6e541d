package utils

import (
	"errors"         // Sentinel upload errors
	"mime/multipart" // Multipart file headers
	"os"             // Staged file removal
	"path/filepath"  // Extension handling
	"strings"        // Lowercasing extensions

	"github.com/google/uuid" // Unique photo filenames
)

// MaxPhotoSize is the upload size ceiling for profile photos (5MB)
const MaxPhotoSize = 5 << 20

// Upload validation errors, mapped to 400 by the handlers
var (
	ErrPhotoType     = errors.New("only JPG/PNG files are allowed") // Wrong file extension
	ErrPhotoTooLarge = errors.New("photo exceeds the 5MB limit")    // File too large
)

// allowedPhotoExts lists the accepted profile photo extensions
var allowedPhotoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ValidatePhoto checks extension and size of an uploaded photo before any disk write
func ValidatePhoto(header *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(header.Filename)) // Normalize the extension
	if !allowedPhotoExts[ext] {
		return ErrPhotoType // Reject anything that is not JPG/PNG
	}
	if header.Size > MaxPhotoSize {
		return ErrPhotoTooLarge // Reject oversized uploads
	}
	return nil
}

// PhotoFilename generates a unique on-disk name for an accepted photo,
// keeping the original extension
func PhotoFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return "photo_" + uuid.New().String() + ext
}

// RemoveUpload deletes a staged upload, ignoring errors; used to clean up
// after a failed or rejected profile update so no orphaned file remains
func RemoveUpload(path string) {
	_ = os.Remove(path)
}
