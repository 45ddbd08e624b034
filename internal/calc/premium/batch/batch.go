package batch

import (
	"errors"
	"fmt"

	"Truss/internal/calc/bridge"
)

const MaxItems = 100

var ErrInvalidBatch = errors.New("batch: invalid batch")

type BridgeBatchInput struct {
	Items []bridge.Input `json:"items"`
}

type BridgeBatchResult struct {
	Results   []bridge.Result `json:"results"`
	SafeCount int             `json:"safe_count"`
}

// CalculateBridge analyses every item in order and stops at the first
// failure, reporting its index.
func CalculateBridge(c *bridge.Calculator, in BridgeBatchInput) (BridgeBatchResult, error) {
	if len(in.Items) == 0 {
		return BridgeBatchResult{}, fmt.Errorf("no items: %w", ErrInvalidBatch)
	}
	if len(in.Items) > MaxItems {
		return BridgeBatchResult{}, fmt.Errorf("%d items, limit %d: %w", len(in.Items), MaxItems, ErrInvalidBatch)
	}
	out := BridgeBatchResult{Results: make([]bridge.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := c.Calculate(item)
		if err != nil {
			return BridgeBatchResult{}, fmt.Errorf("item %d: %w", i, err)
		}
		if res.Safe {
			out.SafeCount++
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
