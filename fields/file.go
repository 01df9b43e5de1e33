package fields

import (
	micromodels "github.com/tonnydourado/micromodels"
)

// FileField passes values through without conversion. It holds opaque
// payloads (readers, raw bytes, handles) that still participate in defaults,
// validation, and export.
type FileField struct{ base }

// File returns a field whose native value is the populated value unchanged.
func File(opts ...Option) *FileField {
	return &FileField{base: newBase(opts)}
}

func (f *FileField) Clone() micromodels.Field {
	c := *f
	return &c
}
