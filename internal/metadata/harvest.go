// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Harvester turns raw metadata documents into a Table using the first
// registered decoder that recognises the document.
type Harvester struct {
	decoders []Decoder
	logger   *zap.Logger
}

// NewHarvester creates a Harvester with the provided decoders. Decoder order
// matters: more specific decoders (landing page, JSON-LD) should be
// registered before generic ones (YAML) to avoid mis-detection.
func NewHarvester(logger *zap.Logger, decoders ...Decoder) *Harvester {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Harvester{
		decoders: decoders,
		logger:   logger,
	}
}

// HarvestResult is the output of a successful harvest.
type HarvestResult struct {
	Table       *Table
	DecoderUsed string
	RecordCount int
}

// Harvest decodes the source into a Table. An empty result is fatal: an
// evaluation scored against absent metadata would be meaningless, so the
// error aborts the run rather than degrade it.
func (h *Harvester) Harvest(ctx context.Context, source Source) (*Table, error) {
	result, err := h.HarvestWithMeta(ctx, source)
	if err != nil {
		return nil, err
	}
	return result.Table, nil
}

// HarvestWithMeta decodes the source and reports which decoder ran.
func (h *Harvester) HarvestWithMeta(ctx context.Context, source Source) (HarvestResult, error) {
	decoder, err := h.selectDecoder(source)
	if err != nil {
		return HarvestResult{}, err
	}

	records, err := decoder.Decode(ctx, source)
	if err != nil {
		return HarvestResult{}, fmt.Errorf("decoder %q failed: %w", decoder.Name(), err)
	}
	if len(records) == 0 {
		return HarvestResult{}, fmt.Errorf("empty metadata record received from %q", source.ID)
	}

	h.logger.Debug("harvested metadata",
		zap.String("source", source.ID),
		zap.String("decoder", decoder.Name()),
		zap.Int("records", len(records)))

	return HarvestResult{
		Table:       NewTable(records),
		DecoderUsed: decoder.Name(),
		RecordCount: len(records),
	}, nil
}

// selectDecoder returns the first registered decoder that can handle the source.
func (h *Harvester) selectDecoder(source Source) (Decoder, error) {
	for _, decoder := range h.decoders {
		if decoder.CanHandle(source) {
			return decoder, nil
		}
	}
	return nil, fmt.Errorf("unsupported metadata format: no decoder found for source %q (format hint: %q)", source.ID, source.Format)
}

// RegisteredDecoders returns the names of all currently registered decoders.
func (h *Harvester) RegisteredDecoders() []string {
	names := make([]string, len(h.decoders))
	for i, decoder := range h.decoders {
		names[i] = decoder.Name()
	}
	return names
}
