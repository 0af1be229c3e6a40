package documents

import (
	"errors"

	"notary-portal/notary-portal-backend/internal/audit"
	"notary-portal/notary-portal-backend/pkg/pdf"
)

var (
	// ErrNotFound indicates the referenced file is absent from storage.
	ErrNotFound = errors.New("file not found")
	// ErrInvalidDocument indicates an unparseable or empty PDF.
	ErrInvalidDocument = pdf.ErrInvalidDocument
	// ErrSigningFailed indicates an I/O or serialization failure while
	// producing the signed file.
	ErrSigningFailed = errors.New("signing failed")
	// ErrVerificationFailed indicates an I/O failure while hashing.
	ErrVerificationFailed = errors.New("verification failed")
)

// UploadResult describes a stored upload. DocumentID is a request-time
// timestamp with no enforced relationship to the stored filename; the
// caller supplies both to the sign step.
type UploadResult struct {
	DocumentID   string `json:"documentId"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalname"`
	Size         int64  `json:"size"`
	UploadPath   string `json:"uploadPath"`
}

// SignResult describes a completed signing.
type SignResult struct {
	DocumentID     string      `json:"documentId"`
	SignedFilename string      `json:"signedFilename"`
	Hash           string      `json:"hash"`
	AuditEntry     audit.Entry `json:"auditEntry"`
}

// VerifyResult reports a tamper check against an expected content hash.
type VerifyResult struct {
	Filename     string `json:"filename"`
	ExpectedHash string `json:"expectedHash"`
	ActualHash   string `json:"actualHash"`
	IsValid      bool   `json:"isValid"`
	Status       string `json:"status"`
}

const (
	statusAuthentic = "Document is authentic"
	statusTampered  = "Document has been tampered with"
)
