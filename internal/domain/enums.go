package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// DocumentType is the closed set of recognized claim-support document types.
type DocumentType string

const (
	DocumentTypeSuperbill       DocumentType = "Superbill"
	DocumentTypeEOB             DocumentType = "EOB"
	DocumentTypePharmacyReceipt DocumentType = "Pharmacy Receipt"
	DocumentTypeUnknown         DocumentType = "Unknown"
)

// KnownDocumentTypes lists the three recognized types, in rubric order.
var KnownDocumentTypes = []DocumentType{
	DocumentTypeSuperbill,
	DocumentTypeEOB,
	DocumentTypePharmacyReceipt,
}

// IsValidDocumentType reports whether t belongs to the closed set,
// including the explicit Unknown value.
func IsValidDocumentType(t DocumentType) bool {
	switch t {
	case DocumentTypeSuperbill, DocumentTypeEOB, DocumentTypePharmacyReceipt, DocumentTypeUnknown:
		return true
	}
	return false
}

// EntryStatus represents the lifecycle of a document within a batch.
type EntryStatus string

const (
	EntryStatusPending   EntryStatus = "pending"
	EntryStatusSucceeded EntryStatus = "succeeded"
	EntryStatusFailed    EntryStatus = "failed"
)
