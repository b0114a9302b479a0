package usecase

import "io"

// FileUpload is a file received with a request, stored through the content store.
type FileUpload struct {
	Name    string
	Content io.Reader
}
