package domain

type UploadResult struct {
	Path       string
	ResultName string // filled in case of a success
	UsedOCR    bool   // filled in case of a success
	Error      error  // filled in case of an error
}
