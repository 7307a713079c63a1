package dataset

import (
	"context"
	"errors"
	"io"
	"strings"
)

// DefaultPrefetch is the number of records read ahead of the consumer.
const DefaultPrefetch = 32

// CollectOptions bounds and filters a collection pass.
type CollectOptions struct {
	// Limit caps the number of collected records; 0 means no limit.
	Limit int
	// TaskFilter keeps records whose type contains it, case-insensitively.
	TaskFilter string
	Prefetch   int
}

// Collection is the materialized result of a collection pass.
type Collection struct {
	Records    []Record
	TaskCounts map[string]int
	BaseDir    string
}

type prefetched struct {
	record Record
	err    error
}

// Collect streams records through a bounded prefetch buffer, applying the
// task filter and limit.
func Collect(ctx context.Context, reader *Reader, opts CollectOptions) (Collection, error) {
	size := opts.Prefetch
	if size <= 0 {
		size = DefaultPrefetch
	}
	ctx, cancel := context.WithCancel(ctx)
	items := make(chan prefetched, size)
	done := make(chan struct{})
	defer func() {
		cancel()
		<-done
	}()

	go func() {
		defer close(done)
		defer close(items)
		for {
			record, err := reader.Next()
			select {
			case items <- prefetched{record: record, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	collection := Collection{TaskCounts: map[string]int{}, BaseDir: reader.BaseDir()}
	filter := strings.ToLower(strings.TrimSpace(opts.TaskFilter))
	for item := range items {
		if item.err != nil {
			if errors.Is(item.err, io.EOF) {
				break
			}
			return Collection{}, item.err
		}
		if filter != "" && !strings.Contains(strings.ToLower(item.record.Type), filter) {
			continue
		}
		collection.TaskCounts[item.record.Type]++
		collection.Records = append(collection.Records, item.record)
		if opts.Limit > 0 && len(collection.Records) >= opts.Limit {
			break
		}
	}
	if err := ctx.Err(); err != nil {
		return Collection{}, err
	}
	return collection, nil
}
