package worksite

// Image is an uploaded picture stored under the static uploads directory.
type Image struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Size         int    `json:"size"`
	UploadedAt   string `json:"uploadedAt"`
}

// URL is the public path of the image, usable as an image block src.
func (i Image) URL() string {
	return "/public/" + uploadsSubdir + "/" + i.Filename
}
