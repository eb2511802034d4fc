package filestorage

import (
	"mime/multipart"
)

// Subdirectories for the different asset kinds the platform stores.
const (
	SubdirCourseCovers    = "courses/covers"
	SubdirLessonMaterials = "courses/materials"
	SubdirForumFiles      = "forum/files"
	SubdirProfilePhotos   = "profiles"
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile saves a file under the given subdirectory and returns its accessible path
	SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a file from storage; deleting a missing file is not an error
	DeleteFile(filePath string) error
}
