package opine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/opine-io/opine-client/internal/constants"
)

// Static errors for batch dispatch.
var (
	ErrUnsupportedBatchKind = errors.New("unsupported resource kind for batch operation")
	ErrUnsupportedBatchOp   = errors.New("unsupported batch operation type")
)

// Batch operation types.
const (
	BatchOpGet    = "get"
	BatchOpDelete = "delete"
)

// BatchOperation describes one operation on one resource.
type BatchOperation struct {
	// ID correlates the operation with its result.
	ID string

	// Kind of resource the operation targets.
	Kind ResourceKind

	// Type of operation: BatchOpGet or BatchOpDelete.
	Type string

	// Identifier of the target resource.
	Identifier Identifier
}

// BatchResult is the outcome of one batch operation. One operation's
// failure never blocks or corrupts another's result.
type BatchResult struct {
	ID      string
	Success bool
	Data    interface{}
	Error   error
}

// BatchExecutor runs independent operations with bounded concurrency.
type BatchExecutor struct {
	client      Client
	concurrency int
}

// NewBatchExecutor creates a batch executor. concurrency <= 0 uses the
// default limit.
func NewBatchExecutor(client Client, concurrency int) *BatchExecutor {
	if concurrency <= 0 {
		concurrency = constants.DefaultConcurrencyLimit
	}

	return &BatchExecutor{client: client, concurrency: concurrency}
}

// Execute runs all operations and returns their results in input order.
func (e *BatchExecutor) Execute(ctx context.Context, operations []BatchOperation) []BatchResult {
	results := make([]BatchResult, len(operations))
	semaphore := make(chan struct{}, e.concurrency)

	var wg sync.WaitGroup

	for i, operation := range operations {
		wg.Add(1)

		go func(index int, op BatchOperation) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			results[index] = e.execute(ctx, op)
		}(i, operation)
	}

	wg.Wait()

	return results
}

func (e *BatchExecutor) execute(ctx context.Context, op BatchOperation) BatchResult {
	result := BatchResult{ID: op.ID}

	data, err := e.dispatch(ctx, op)
	result.Success = err == nil
	result.Data = data
	result.Error = err

	return result
}

func (e *BatchExecutor) dispatch(ctx context.Context, op BatchOperation) (interface{}, error) {
	switch op.Kind {
	case KindSource:
		return e.dispatchSource(ctx, op)
	case KindDataset:
		return e.dispatchDataset(ctx, op)
	case KindBucket:
		return e.dispatchBucket(ctx, op)
	case KindStream, KindProject, KindUser:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBatchKind, op.Kind)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBatchKind, op.Kind)
	}
}

func (e *BatchExecutor) dispatchSource(ctx context.Context, op BatchOperation) (interface{}, error) {
	switch op.Type {
	case BatchOpGet:
		return e.client.Sources().Get(ctx, op.Identifier)
	case BatchOpDelete:
		return nil, e.client.Sources().Delete(ctx, op.Identifier)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBatchOp, op.Type)
	}
}

func (e *BatchExecutor) dispatchDataset(ctx context.Context, op BatchOperation) (interface{}, error) {
	switch op.Type {
	case BatchOpGet:
		return e.client.Datasets().Get(ctx, op.Identifier)
	case BatchOpDelete:
		return nil, e.client.Datasets().Delete(ctx, op.Identifier)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBatchOp, op.Type)
	}
}

func (e *BatchExecutor) dispatchBucket(ctx context.Context, op BatchOperation) (interface{}, error) {
	switch op.Type {
	case BatchOpGet:
		return e.client.Buckets().Get(ctx, op.Identifier)
	case BatchOpDelete:
		return nil, e.client.Buckets().Delete(ctx, op.Identifier)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBatchOp, op.Type)
	}
}
