package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"notary-portal/notary-portal-backend/internal/audit"
	"notary-portal/notary-portal-backend/internal/auth"
	"notary-portal/notary-portal-backend/internal/obs"
	"notary-portal/notary-portal-backend/pkg/pdf"
	"notary-portal/notary-portal-backend/pkg/security"
)

// Service orchestrates the notary document workflow: upload, sign,
// download, verify and audit listing.
type Service interface {
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)
	Sign(ctx context.Context, identity auth.Identity, documentID, filename string) (*SignResult, error)
	FilePath(filename string) (string, error)
	Verify(ctx context.Context, filename, expectedHash string) (*VerifyResult, error)
	AuditTrail(ctx context.Context) ([]audit.Entry, error)
}

// UploadRequest carries one incoming file.
type UploadRequest struct {
	OriginalName string
	Size         int64
	Content      io.Reader
}

type documentService struct {
	storage *Storage
	stamper *pdf.Stamper
	trail   audit.Store
	logger  *zap.Logger
}

func NewService(storage *Storage, stamper *pdf.Stamper, trail audit.Store, logger *zap.Logger) Service {
	return &documentService{
		storage: storage,
		stamper: stamper,
		trail:   trail,
		logger:  logger,
	}
}

func (s *documentService) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	documentID := strconv.FormatInt(time.Now().UnixMilli(), 10)
	filename := s.storage.GenerateFilename("pdf", req.OriginalName)

	size, err := s.storage.Save(filename, req.Content)
	if err != nil {
		return nil, fmt.Errorf("persist upload: %w", err)
	}

	s.logger.Info("document uploaded",
		zap.String("documentId", documentID),
		zap.String("filename", filename),
		zap.Int64("size", size))

	return &UploadResult{
		DocumentID:   documentID,
		Filename:     filename,
		OriginalName: req.OriginalName,
		Size:         size,
		UploadPath:   s.storage.Path(filename),
	}, nil
}

func (s *documentService) Sign(ctx context.Context, identity auth.Identity, documentID, filename string) (*SignResult, error) {
	filename = filepath.Base(filename)
	if !s.storage.Exists(filename) {
		return nil, ErrNotFound
	}

	signedAt := time.Now().UTC()
	stamped, err := s.stamper.Apply(s.storage.Path(filename), pdf.Stamp{
		SignerName: identity.Name,
		NotaryID:   identity.ID,
		SignedAt:   signedAt,
	})
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidDocument) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}

	signedFilename := fmt.Sprintf("signed-%s-%s", documentID, filename)
	if err := s.storage.WriteFile(signedFilename, stamped); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}

	// Appended only after the signed file is fully written, so the entry
	// hash always matches the on-disk bytes.
	entry := audit.Entry{
		ID:           documentID,
		NotaryID:     identity.ID,
		Timestamp:    signedAt.Format(time.RFC3339),
		OriginalFile: filename,
		SignedFile:   signedFilename,
		Hash:         security.HashBytes(stamped),
	}
	if err := s.trail.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("%w: record audit entry: %v", ErrSigningFailed, err)
	}

	obs.SigningCompleted()
	s.logger.Info("document signed",
		zap.String("documentId", documentID),
		zap.Int("notaryId", identity.ID),
		zap.String("signedFilename", signedFilename))

	return &SignResult{
		DocumentID:     documentID,
		SignedFilename: signedFilename,
		Hash:           entry.Hash,
		AuditEntry:     entry,
	}, nil
}

func (s *documentService) FilePath(filename string) (string, error) {
	filename = filepath.Base(filename)
	if !s.storage.Exists(filename) {
		return "", ErrNotFound
	}
	return s.storage.Path(filename), nil
}

func (s *documentService) Verify(ctx context.Context, filename, expectedHash string) (*VerifyResult, error) {
	filename = filepath.Base(filename)
	if !s.storage.Exists(filename) {
		return nil, ErrNotFound
	}

	actualHash, err := security.HashFile(s.storage.Path(filename))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}

	isValid := actualHash == expectedHash
	status := statusTampered
	if isValid {
		status = statusAuthentic
	}

	return &VerifyResult{
		Filename:     filename,
		ExpectedHash: expectedHash,
		ActualHash:   actualHash,
		IsValid:      isValid,
		Status:       status,
	}, nil
}

func (s *documentService) AuditTrail(ctx context.Context) ([]audit.Entry, error) {
	return s.trail.List(ctx)
}
