package models

// SignedUploadURLRequest is the body of POST /storage/upload-url
type SignedUploadURLRequest struct {
	Filename string `json:"filename"`
	Upsert   *bool  `json:"upsert,omitempty"`
}

// SignedUploadURLResponse is a short-lived descriptor authorizing one upload
type SignedUploadURLResponse struct {
	URL   string `json:"url"`
	Path  string `json:"path"`
	Token string `json:"token,omitempty"`
}

// SignedDownloadURLRequest is the body of POST /storage/download-url
type SignedDownloadURLRequest struct {
	Path      string `json:"path"`
	ExpiresIn *int   `json:"expiresIn,omitempty"`
}

// SignedDownloadURLResponse carries a temporary download URL
type SignedDownloadURLResponse struct {
	URL string `json:"url"`
}

// UploadFromSourceParams describes one file to push through the upload pipeline.
// SourceURI may be a local path, a file:// URI or a data: URI.
type UploadFromSourceParams struct {
	SourceURI   string
	FileName    string
	ContentType string
	Upsert      *bool
}

// UploadResult is returned by a successful upload
type UploadResult struct {
	Path string `json:"path"`
}
