package services

import (
	"context"
	"fmt"
	"io"

	"github.com/rxtech-lab/launchpad-drafts/internal/models"
	"go.uber.org/zap"
)

// encodeFile reads f to completion and returns its storable form. The stored
// size is the number of bytes actually read.
func encodeFile(ctx context.Context, logger *zap.Logger, role models.AssetRole, position int, f models.File) (models.DraftAsset, error) {
	if err := ctx.Err(); err != nil {
		return models.DraftAsset{}, err
	}
	if f == nil {
		return models.DraftAsset{}, fmt.Errorf("%w: nil file at %s[%d]", ErrEncodingFailure, role, position)
	}

	rc, err := f.Open()
	if err != nil {
		return models.DraftAsset{}, fmt.Errorf("%w: open %q: %w", ErrEncodingFailure, f.Name(), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return models.DraftAsset{}, fmt.Errorf("%w: read %q: %w", ErrEncodingFailure, f.Name(), err)
	}

	if reported := f.Size(); reported >= 0 && reported != int64(len(data)) {
		logger.Warn("file size differs from bytes read",
			zap.String("name", f.Name()),
			zap.Int64("reported", reported),
			zap.Int("read", len(data)))
	}

	return models.DraftAsset{
		Role:     role,
		Position: position,
		Name:     f.Name(),
		Type:     f.Type(),
		Size:     int64(len(data)),
		Data:     data,
	}, nil
}

// encodeFiles encodes files sequentially in order.
func encodeFiles(ctx context.Context, logger *zap.Logger, role models.AssetRole, files []models.File) ([]models.DraftAsset, error) {
	out := make([]models.DraftAsset, 0, len(files))
	for i, f := range files {
		asset, err := encodeFile(ctx, logger, role, i, f)
		if err != nil {
			return nil, err
		}
		out = append(out, asset)
	}
	return out, nil
}

// decodeAsset turns a stored row back into a file handle. The byte length of
// the stored data wins over the recorded size; a mismatch is logged.
func decodeAsset(logger *zap.Logger, row models.DraftAsset) models.Asset {
	if row.Size != int64(len(row.Data)) {
		logger.Warn("stored asset size does not match its data",
			zap.String("draft_id", row.DraftID),
			zap.String("name", row.Name),
			zap.Int64("recorded", row.Size),
			zap.Int("actual", len(row.Data)))
	}
	return models.Asset{
		Filename:    row.Name,
		ContentType: row.Type,
		Data:        row.Data,
	}
}
