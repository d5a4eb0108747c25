package domain

// AttachableFile is a named, MIME-typed blob ready for upload. It is handed
// to a platform strategy immediately after construction and never retained.
type AttachableFile struct {
	Data     []byte
	Filename string
	MIME     string
}

// Size returns the file size in bytes.
func (f AttachableFile) Size() int {
	return len(f.Data)
}
