package model

// UploadedDocument lives only for the request that created it; intake removes Path when the request ends.
type UploadedDocument struct {
	FileName  string `json:"file_name"`
	Extension string `json:"extension"`
	MIMEType  string `json:"mime_type"`
	Size      int64  `json:"size"`
	Path      string `json:"-"`
}
