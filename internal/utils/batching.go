package utils

import (
	"log/slog"
	"sync"
)

const BATCH_SIZE = 25

type BatchBuffer[T any] struct {
	buffer     []T
	bufferLock sync.Mutex
}

func NewBatchBuffer[T any]() *BatchBuffer[T] {
	return &BatchBuffer[T]{
		buffer: make([]T, 0, BATCH_SIZE),
	}
}

func (b *BatchBuffer[T]) Add(item T) {
	b.bufferLock.Lock()
	defer b.bufferLock.Unlock()

	b.buffer = append(b.buffer, item)
}

func (b *BatchBuffer[T]) GetAndClear() []T {
	b.bufferLock.Lock()
	defer b.bufferLock.Unlock()

	if len(b.buffer) == 0 {
		return nil
	}

	batch := b.buffer
	b.buffer = make([]T, 0, BATCH_SIZE)
	return batch
}

func (b *BatchBuffer[T]) Size() int {
	b.bufferLock.Lock()
	defer b.bufferLock.Unlock()
	return len(b.buffer)
}

func (b *BatchBuffer[T]) LogBatchProcessing(batchType string) {
	b.bufferLock.Lock()
	defer b.bufferLock.Unlock()

	slog.Info("[BatchBuffer] Processing batch",
		slog.String("type", batchType),
		slog.Int("batch_size", len(b.buffer)))
}

// Chunk splits items into consecutive slices of at most size elements.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		if len(items) == 0 {
			return nil
		}
		return [][]T{items}
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
