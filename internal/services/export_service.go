package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"librostock/internal/repositories"
)

const exportURLExpiry = 15 * time.Minute

// ExportService writes movement-ledger snapshots as CSV objects and hands
// back a presigned download URL. Exports are read-only over the ledger.
type ExportService interface {
	ExportMovements(ctx context.Context, kindFilter string) (string, error)
}

type exportService struct {
	movementRepo repositories.MovementRepository
	minioSvc     MinioService
	bucketName   string
}

func NewExportService(movementRepo repositories.MovementRepository, minioSvc MinioService, bucketName string) ExportService {
	return &exportService{
		movementRepo: movementRepo,
		minioSvc:     minioSvc,
		bucketName:   bucketName,
	}
}

func (s *exportService) ExportMovements(ctx context.Context, kindFilter string) (string, error) {
	movements, err := s.movementRepo.List(ctx, kindFilter)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "inventario_id", "tipo", "cantidad", "usuario_id", "observaciones", "fecha_movimiento"}); err != nil {
		return "", err
	}
	for _, m := range movements {
		userID := ""
		if m.UserID != nil {
			userID = m.UserID.String()
		}
		notes := ""
		if m.Notes != nil {
			notes = *m.Notes
		}
		record := []string{
			m.ID.String(),
			m.InventoryID.String(),
			m.Tipo,
			strconv.Itoa(m.Cantidad),
			userID,
			notes,
			m.OccurredAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	if err := s.minioSvc.EnsureBucketExists(ctx, s.bucketName); err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("movimientos-%s.csv", time.Now().UTC().Format("20060102-150405"))
	if err := s.minioSvc.Upload(ctx, s.bucketName, objectName, "text/csv", &buf, int64(buf.Len())); err != nil {
		return "", err
	}

	return s.minioSvc.GetPresignedURL(ctx, s.bucketName, objectName, exportURLExpiry)
}
